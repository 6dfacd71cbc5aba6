/*
 * Copyright 2023 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ir

import (
    `fmt`
)

// OpCode enumerates the Dalvik opcode set handled by the optimizer, plus the
// synthetic load-param opcodes that model method parameters as instructions.
// The set is closed: passes switch over it exhaustively and panic on anything
// they do not expect.
type OpCode uint16

const (
    OP_nop OpCode = iota

    /* register-to-register moves */
    OP_move
    OP_move_from16
    OP_move_16
    OP_move_wide
    OP_move_wide_from16
    OP_move_wide_16
    OP_move_object
    OP_move_object_from16
    OP_move_object_16

    /* result and exception transfers */
    OP_move_result
    OP_move_result_wide
    OP_move_result_object
    OP_move_exception

    /* returns */
    OP_return_void
    OP_return
    OP_return_wide
    OP_return_object

    /* 32-bit constants */
    OP_const_4
    OP_const_16
    OP_const
    OP_const_high16

    /* 64-bit constants */
    OP_const_wide_16
    OP_const_wide_32
    OP_const_wide
    OP_const_wide_high16

    /* reference constants */
    OP_const_string
    OP_const_string_jumbo
    OP_const_class

    /* monitors */
    OP_monitor_enter
    OP_monitor_exit

    /* type checks */
    OP_check_cast
    OP_instance_of

    /* arrays and allocation */
    OP_array_length
    OP_new_instance
    OP_new_array
    OP_filled_new_array
    OP_filled_new_array_range
    OP_fill_array_data

    /* control transfers */
    OP_throw
    OP_goto
    OP_goto_16
    OP_goto_32
    OP_packed_switch
    OP_sparse_switch

    /* comparisons */
    OP_cmpl_float
    OP_cmpg_float
    OP_cmpl_double
    OP_cmpg_double
    OP_cmp_long

    /* two-operand conditional branches */
    OP_if_eq
    OP_if_ne
    OP_if_lt
    OP_if_ge
    OP_if_gt
    OP_if_le

    /* zero-test conditional branches */
    OP_if_eqz
    OP_if_nez
    OP_if_ltz
    OP_if_gez
    OP_if_gtz
    OP_if_lez

    /* array element reads */
    OP_aget
    OP_aget_wide
    OP_aget_object
    OP_aget_boolean
    OP_aget_byte
    OP_aget_char
    OP_aget_short

    /* array element writes */
    OP_aput
    OP_aput_wide
    OP_aput_object
    OP_aput_boolean
    OP_aput_byte
    OP_aput_char
    OP_aput_short

    /* instance field reads */
    OP_iget
    OP_iget_wide
    OP_iget_object
    OP_iget_boolean
    OP_iget_byte
    OP_iget_char
    OP_iget_short

    /* instance field writes */
    OP_iput
    OP_iput_wide
    OP_iput_object
    OP_iput_boolean
    OP_iput_byte
    OP_iput_char
    OP_iput_short

    /* static field reads */
    OP_sget
    OP_sget_wide
    OP_sget_object
    OP_sget_boolean
    OP_sget_byte
    OP_sget_char
    OP_sget_short

    /* static field writes */
    OP_sput
    OP_sput_wide
    OP_sput_object
    OP_sput_boolean
    OP_sput_byte
    OP_sput_char
    OP_sput_short

    /* method invocations */
    OP_invoke_virtual
    OP_invoke_super
    OP_invoke_direct
    OP_invoke_static
    OP_invoke_interface

    /* range-encoded invocations, lowered before register allocation */
    OP_invoke_virtual_range
    OP_invoke_super_range
    OP_invoke_direct_range
    OP_invoke_static_range
    OP_invoke_interface_range

    /* unary arithmetic */
    OP_neg_int
    OP_not_int
    OP_neg_long
    OP_not_long
    OP_neg_float
    OP_neg_double

    /* primitive conversions */
    OP_int_to_long
    OP_int_to_float
    OP_int_to_double
    OP_long_to_int
    OP_long_to_float
    OP_long_to_double
    OP_float_to_int
    OP_float_to_long
    OP_float_to_double
    OP_double_to_int
    OP_double_to_long
    OP_double_to_float
    OP_int_to_byte
    OP_int_to_char
    OP_int_to_short

    /* integer binary arithmetic */
    OP_add_int
    OP_sub_int
    OP_mul_int
    OP_div_int
    OP_rem_int
    OP_and_int
    OP_or_int
    OP_xor_int
    OP_shl_int
    OP_shr_int
    OP_ushr_int

    /* long binary arithmetic */
    OP_add_long
    OP_sub_long
    OP_mul_long
    OP_div_long
    OP_rem_long
    OP_and_long
    OP_or_long
    OP_xor_long
    OP_shl_long
    OP_shr_long
    OP_ushr_long

    /* float binary arithmetic */
    OP_add_float
    OP_sub_float
    OP_mul_float
    OP_div_float
    OP_rem_float

    /* double binary arithmetic */
    OP_add_double
    OP_sub_double
    OP_mul_double
    OP_div_double
    OP_rem_double

    /* two-address forms, lowered before register allocation */
    OP_add_int_2addr
    OP_sub_int_2addr
    OP_mul_int_2addr
    OP_div_int_2addr
    OP_rem_int_2addr
    OP_and_int_2addr
    OP_or_int_2addr
    OP_xor_int_2addr
    OP_shl_int_2addr
    OP_shr_int_2addr
    OP_ushr_int_2addr
    OP_add_long_2addr
    OP_sub_long_2addr
    OP_mul_long_2addr
    OP_div_long_2addr
    OP_rem_long_2addr
    OP_and_long_2addr
    OP_or_long_2addr
    OP_xor_long_2addr
    OP_shl_long_2addr
    OP_shr_long_2addr
    OP_ushr_long_2addr
    OP_add_float_2addr
    OP_sub_float_2addr
    OP_mul_float_2addr
    OP_div_float_2addr
    OP_rem_float_2addr
    OP_add_double_2addr
    OP_sub_double_2addr
    OP_mul_double_2addr
    OP_div_double_2addr
    OP_rem_double_2addr

    /* 16-bit literal binary arithmetic */
    OP_add_int_lit16
    OP_rsub_int
    OP_mul_int_lit16
    OP_div_int_lit16
    OP_rem_int_lit16
    OP_and_int_lit16
    OP_or_int_lit16
    OP_xor_int_lit16

    /* 8-bit literal binary arithmetic */
    OP_add_int_lit8
    OP_rsub_int_lit8
    OP_mul_int_lit8
    OP_div_int_lit8
    OP_rem_int_lit8
    OP_and_int_lit8
    OP_or_int_lit8
    OP_xor_int_lit8
    OP_shl_int_lit8
    OP_shr_int_lit8
    OP_ushr_int_lit8

    /* synthetic parameter loads, inserted at method entry */
    OP_load_param
    OP_load_param_object
    OP_load_param_wide
)

// HasDest reports whether instructions with this opcode write a destination
// register. The answer is a property of the opcode alone.
func (self OpCode) HasDest() bool {
    switch self {
        case OP_nop                  : return false
        case OP_return_void          : fallthrough
        case OP_return               : fallthrough
        case OP_return_wide          : fallthrough
        case OP_return_object        : return false
        case OP_monitor_enter        : fallthrough
        case OP_monitor_exit         : return false
        case OP_fill_array_data      : return false
        case OP_throw                : return false
        case OP_goto                 : fallthrough
        case OP_goto_16              : fallthrough
        case OP_goto_32              : return false
        case OP_packed_switch        : fallthrough
        case OP_sparse_switch        : return false
        case OP_if_eq, OP_if_ne, OP_if_lt, OP_if_ge, OP_if_gt, OP_if_le:
            return false
        case OP_if_eqz, OP_if_nez, OP_if_ltz, OP_if_gez, OP_if_gtz, OP_if_lez:
            return false
        case OP_aput, OP_aput_wide, OP_aput_object, OP_aput_boolean, OP_aput_byte, OP_aput_char, OP_aput_short:
            return false
        case OP_iput, OP_iput_wide, OP_iput_object, OP_iput_boolean, OP_iput_byte, OP_iput_char, OP_iput_short:
            return false
        case OP_sput, OP_sput_wide, OP_sput_object, OP_sput_boolean, OP_sput_byte, OP_sput_char, OP_sput_short:
            return false
        case OP_invoke_virtual, OP_invoke_super, OP_invoke_direct, OP_invoke_static, OP_invoke_interface:
            return false
        case OP_invoke_virtual_range, OP_invoke_super_range, OP_invoke_direct_range, OP_invoke_static_range, OP_invoke_interface_range:
            return false
        default:
            return true
    }
}

// IsInvoke reports whether this is one of the non-range invocation opcodes.
func (self OpCode) IsInvoke() bool {
    switch self {
        case OP_invoke_virtual   : fallthrough
        case OP_invoke_super     : fallthrough
        case OP_invoke_direct    : fallthrough
        case OP_invoke_static    : fallthrough
        case OP_invoke_interface : return true
        default                  : return false
    }
}

// IsGoto reports whether this is an unconditional branch.
func (self OpCode) IsGoto() bool {
    return self == OP_goto || self == OP_goto_16 || self == OP_goto_32
}

// IsConditional reports whether this is a conditional branch.
func (self OpCode) IsConditional() bool {
    return self >= OP_if_eq && self <= OP_if_lez
}

// IsSwitch reports whether this is a multi-way branch.
func (self OpCode) IsSwitch() bool {
    return self == OP_packed_switch || self == OP_sparse_switch
}

// IsReturn reports whether this opcode leaves the method normally.
func (self OpCode) IsReturn() bool {
    return self >= OP_return_void && self <= OP_return_object
}

// IsTerminator reports whether this opcode ends a basic block.
func (self OpCode) IsTerminator() bool {
    return self.IsGoto() || self.IsConditional() || self.IsSwitch() || self.IsReturn() || self == OP_throw
}

func (self OpCode) String() string {
    switch self {
        case OP_nop                       : return "nop"
        case OP_move                      : return "move"
        case OP_move_from16               : return "move/from16"
        case OP_move_16                   : return "move/16"
        case OP_move_wide                 : return "move-wide"
        case OP_move_wide_from16          : return "move-wide/from16"
        case OP_move_wide_16              : return "move-wide/16"
        case OP_move_object               : return "move-object"
        case OP_move_object_from16        : return "move-object/from16"
        case OP_move_object_16            : return "move-object/16"
        case OP_move_result               : return "move-result"
        case OP_move_result_wide          : return "move-result-wide"
        case OP_move_result_object        : return "move-result-object"
        case OP_move_exception            : return "move-exception"
        case OP_return_void               : return "return-void"
        case OP_return                    : return "return"
        case OP_return_wide               : return "return-wide"
        case OP_return_object             : return "return-object"
        case OP_const_4                   : return "const/4"
        case OP_const_16                  : return "const/16"
        case OP_const                     : return "const"
        case OP_const_high16              : return "const/high16"
        case OP_const_wide_16             : return "const-wide/16"
        case OP_const_wide_32             : return "const-wide/32"
        case OP_const_wide                : return "const-wide"
        case OP_const_wide_high16         : return "const-wide/high16"
        case OP_const_string              : return "const-string"
        case OP_const_string_jumbo        : return "const-string/jumbo"
        case OP_const_class               : return "const-class"
        case OP_monitor_enter             : return "monitor-enter"
        case OP_monitor_exit              : return "monitor-exit"
        case OP_check_cast                : return "check-cast"
        case OP_instance_of               : return "instance-of"
        case OP_array_length              : return "array-length"
        case OP_new_instance              : return "new-instance"
        case OP_new_array                 : return "new-array"
        case OP_filled_new_array          : return "filled-new-array"
        case OP_filled_new_array_range    : return "filled-new-array/range"
        case OP_fill_array_data           : return "fill-array-data"
        case OP_throw                     : return "throw"
        case OP_goto                      : return "goto"
        case OP_goto_16                   : return "goto/16"
        case OP_goto_32                   : return "goto/32"
        case OP_packed_switch             : return "packed-switch"
        case OP_sparse_switch             : return "sparse-switch"
        case OP_cmpl_float                : return "cmpl-float"
        case OP_cmpg_float                : return "cmpg-float"
        case OP_cmpl_double               : return "cmpl-double"
        case OP_cmpg_double               : return "cmpg-double"
        case OP_cmp_long                  : return "cmp-long"
        case OP_if_eq                     : return "if-eq"
        case OP_if_ne                     : return "if-ne"
        case OP_if_lt                     : return "if-lt"
        case OP_if_ge                     : return "if-ge"
        case OP_if_gt                     : return "if-gt"
        case OP_if_le                     : return "if-le"
        case OP_if_eqz                    : return "if-eqz"
        case OP_if_nez                    : return "if-nez"
        case OP_if_ltz                    : return "if-ltz"
        case OP_if_gez                    : return "if-gez"
        case OP_if_gtz                    : return "if-gtz"
        case OP_if_lez                    : return "if-lez"
        case OP_aget                      : return "aget"
        case OP_aget_wide                 : return "aget-wide"
        case OP_aget_object               : return "aget-object"
        case OP_aget_boolean              : return "aget-boolean"
        case OP_aget_byte                 : return "aget-byte"
        case OP_aget_char                 : return "aget-char"
        case OP_aget_short                : return "aget-short"
        case OP_aput                      : return "aput"
        case OP_aput_wide                 : return "aput-wide"
        case OP_aput_object               : return "aput-object"
        case OP_aput_boolean              : return "aput-boolean"
        case OP_aput_byte                 : return "aput-byte"
        case OP_aput_char                 : return "aput-char"
        case OP_aput_short                : return "aput-short"
        case OP_iget                      : return "iget"
        case OP_iget_wide                 : return "iget-wide"
        case OP_iget_object               : return "iget-object"
        case OP_iget_boolean              : return "iget-boolean"
        case OP_iget_byte                 : return "iget-byte"
        case OP_iget_char                 : return "iget-char"
        case OP_iget_short                : return "iget-short"
        case OP_iput                      : return "iput"
        case OP_iput_wide                 : return "iput-wide"
        case OP_iput_object               : return "iput-object"
        case OP_iput_boolean              : return "iput-boolean"
        case OP_iput_byte                 : return "iput-byte"
        case OP_iput_char                 : return "iput-char"
        case OP_iput_short                : return "iput-short"
        case OP_sget                      : return "sget"
        case OP_sget_wide                 : return "sget-wide"
        case OP_sget_object               : return "sget-object"
        case OP_sget_boolean              : return "sget-boolean"
        case OP_sget_byte                 : return "sget-byte"
        case OP_sget_char                 : return "sget-char"
        case OP_sget_short                : return "sget-short"
        case OP_sput                      : return "sput"
        case OP_sput_wide                 : return "sput-wide"
        case OP_sput_object               : return "sput-object"
        case OP_sput_boolean              : return "sput-boolean"
        case OP_sput_byte                 : return "sput-byte"
        case OP_sput_char                 : return "sput-char"
        case OP_sput_short                : return "sput-short"
        case OP_invoke_virtual            : return "invoke-virtual"
        case OP_invoke_super              : return "invoke-super"
        case OP_invoke_direct             : return "invoke-direct"
        case OP_invoke_static             : return "invoke-static"
        case OP_invoke_interface          : return "invoke-interface"
        case OP_invoke_virtual_range      : return "invoke-virtual/range"
        case OP_invoke_super_range        : return "invoke-super/range"
        case OP_invoke_direct_range       : return "invoke-direct/range"
        case OP_invoke_static_range       : return "invoke-static/range"
        case OP_invoke_interface_range    : return "invoke-interface/range"
        case OP_neg_int                   : return "neg-int"
        case OP_not_int                   : return "not-int"
        case OP_neg_long                  : return "neg-long"
        case OP_not_long                  : return "not-long"
        case OP_neg_float                 : return "neg-float"
        case OP_neg_double                : return "neg-double"
        case OP_int_to_long               : return "int-to-long"
        case OP_int_to_float              : return "int-to-float"
        case OP_int_to_double             : return "int-to-double"
        case OP_long_to_int               : return "long-to-int"
        case OP_long_to_float             : return "long-to-float"
        case OP_long_to_double            : return "long-to-double"
        case OP_float_to_int              : return "float-to-int"
        case OP_float_to_long             : return "float-to-long"
        case OP_float_to_double           : return "float-to-double"
        case OP_double_to_int             : return "double-to-int"
        case OP_double_to_long            : return "double-to-long"
        case OP_double_to_float           : return "double-to-float"
        case OP_int_to_byte               : return "int-to-byte"
        case OP_int_to_char               : return "int-to-char"
        case OP_int_to_short              : return "int-to-short"
        case OP_add_int                   : return "add-int"
        case OP_sub_int                   : return "sub-int"
        case OP_mul_int                   : return "mul-int"
        case OP_div_int                   : return "div-int"
        case OP_rem_int                   : return "rem-int"
        case OP_and_int                   : return "and-int"
        case OP_or_int                    : return "or-int"
        case OP_xor_int                   : return "xor-int"
        case OP_shl_int                   : return "shl-int"
        case OP_shr_int                   : return "shr-int"
        case OP_ushr_int                  : return "ushr-int"
        case OP_add_long                  : return "add-long"
        case OP_sub_long                  : return "sub-long"
        case OP_mul_long                  : return "mul-long"
        case OP_div_long                  : return "div-long"
        case OP_rem_long                  : return "rem-long"
        case OP_and_long                  : return "and-long"
        case OP_or_long                   : return "or-long"
        case OP_xor_long                  : return "xor-long"
        case OP_shl_long                  : return "shl-long"
        case OP_shr_long                  : return "shr-long"
        case OP_ushr_long                 : return "ushr-long"
        case OP_add_float                 : return "add-float"
        case OP_sub_float                 : return "sub-float"
        case OP_mul_float                 : return "mul-float"
        case OP_div_float                 : return "div-float"
        case OP_rem_float                 : return "rem-float"
        case OP_add_double                : return "add-double"
        case OP_sub_double                : return "sub-double"
        case OP_mul_double                : return "mul-double"
        case OP_div_double                : return "div-double"
        case OP_rem_double                : return "rem-double"
        case OP_add_int_2addr             : return "add-int/2addr"
        case OP_sub_int_2addr             : return "sub-int/2addr"
        case OP_mul_int_2addr             : return "mul-int/2addr"
        case OP_div_int_2addr             : return "div-int/2addr"
        case OP_rem_int_2addr             : return "rem-int/2addr"
        case OP_and_int_2addr             : return "and-int/2addr"
        case OP_or_int_2addr              : return "or-int/2addr"
        case OP_xor_int_2addr             : return "xor-int/2addr"
        case OP_shl_int_2addr             : return "shl-int/2addr"
        case OP_shr_int_2addr             : return "shr-int/2addr"
        case OP_ushr_int_2addr            : return "ushr-int/2addr"
        case OP_add_long_2addr            : return "add-long/2addr"
        case OP_sub_long_2addr            : return "sub-long/2addr"
        case OP_mul_long_2addr            : return "mul-long/2addr"
        case OP_div_long_2addr            : return "div-long/2addr"
        case OP_rem_long_2addr            : return "rem-long/2addr"
        case OP_and_long_2addr            : return "and-long/2addr"
        case OP_or_long_2addr             : return "or-long/2addr"
        case OP_xor_long_2addr            : return "xor-long/2addr"
        case OP_shl_long_2addr            : return "shl-long/2addr"
        case OP_shr_long_2addr            : return "shr-long/2addr"
        case OP_ushr_long_2addr           : return "ushr-long/2addr"
        case OP_add_float_2addr           : return "add-float/2addr"
        case OP_sub_float_2addr           : return "sub-float/2addr"
        case OP_mul_float_2addr           : return "mul-float/2addr"
        case OP_div_float_2addr           : return "div-float/2addr"
        case OP_rem_float_2addr           : return "rem-float/2addr"
        case OP_add_double_2addr          : return "add-double/2addr"
        case OP_sub_double_2addr          : return "sub-double/2addr"
        case OP_mul_double_2addr          : return "mul-double/2addr"
        case OP_div_double_2addr          : return "div-double/2addr"
        case OP_rem_double_2addr          : return "rem-double/2addr"
        case OP_add_int_lit16             : return "add-int/lit16"
        case OP_rsub_int                  : return "rsub-int"
        case OP_mul_int_lit16             : return "mul-int/lit16"
        case OP_div_int_lit16             : return "div-int/lit16"
        case OP_rem_int_lit16             : return "rem-int/lit16"
        case OP_and_int_lit16             : return "and-int/lit16"
        case OP_or_int_lit16              : return "or-int/lit16"
        case OP_xor_int_lit16             : return "xor-int/lit16"
        case OP_add_int_lit8              : return "add-int/lit8"
        case OP_rsub_int_lit8             : return "rsub-int/lit8"
        case OP_mul_int_lit8              : return "mul-int/lit8"
        case OP_div_int_lit8              : return "div-int/lit8"
        case OP_rem_int_lit8              : return "rem-int/lit8"
        case OP_and_int_lit8              : return "and-int/lit8"
        case OP_or_int_lit8               : return "or-int/lit8"
        case OP_xor_int_lit8              : return "xor-int/lit8"
        case OP_shl_int_lit8              : return "shl-int/lit8"
        case OP_shr_int_lit8              : return "shr-int/lit8"
        case OP_ushr_int_lit8             : return "ushr-int/lit8"
        case OP_load_param                : return "load-param"
        case OP_load_param_object         : return "load-param-object"
        case OP_load_param_wide           : return "load-param-wide"
        default                           : panic(fmt.Sprintf("invalid OpCode: 0x%02x", uint16(self)))
    }
}
