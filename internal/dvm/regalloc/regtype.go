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

package regalloc

import (
    `fmt`

    `github.com/cloudwego/dexopt/internal/dvm/ir`
)

func noDest(op ir.OpCode) RegisterType {
    panic(fmt.Sprintf("regalloc: no dest register for %s", op))
}

func noSrc(op ir.OpCode, i int) RegisterType {
    panic(fmt.Sprintf("regalloc: no source register %d for %s", i, op))
}

func notLowered(op ir.OpCode) RegisterType {
    panic(fmt.Sprintf("regalloc: %s must be lowered before register allocation", op))
}

func unknownOp(op ir.OpCode) RegisterType {
    panic(fmt.Sprintf("regalloc: unknown opcode: 0x%02x", uint16(op)))
}

// constDestKind makes a zero literal polymorphic: the same constant may later
// flow into either an object slot (as null) or a numeric slot, and the join
// against the use sites settles which.
func constDestKind(p *ir.Instruction) RegisterType {
    if p.Literal() == 0 {
        return Zero
    } else {
        return Normal
    }
}

// DestKind returns the kind written into the destination register. Querying
// an opcode with no destination, or one that normalization should have
// removed, is a programmer error.
func DestKind(p *ir.Instruction) RegisterType {
    switch p.Op {
        case ir.OP_nop:
            return noDest(p.Op)

        case ir.OP_move, ir.OP_move_from16, ir.OP_move_16:
            return Normal

        case ir.OP_move_wide, ir.OP_move_wide_from16, ir.OP_move_wide_16:
            return Wide

        case ir.OP_move_object, ir.OP_move_object_from16, ir.OP_move_object_16:
            return Object

        case ir.OP_move_result        : return Normal
        case ir.OP_move_result_wide   : return Wide
        case ir.OP_move_result_object : return Object
        case ir.OP_move_exception     : return Object

        case ir.OP_return_void, ir.OP_return, ir.OP_return_wide, ir.OP_return_object:
            return noDest(p.Op)

        case ir.OP_const_4, ir.OP_const_16, ir.OP_const, ir.OP_const_high16:
            return constDestKind(p)

        case ir.OP_const_wide_16, ir.OP_const_wide_32, ir.OP_const_wide, ir.OP_const_wide_high16:
            return Wide

        case ir.OP_const_string, ir.OP_const_string_jumbo, ir.OP_const_class:
            return Object

        case ir.OP_monitor_enter, ir.OP_monitor_exit:
            return noDest(p.Op)

        case ir.OP_check_cast  : return Object
        case ir.OP_instance_of : return Normal

        case ir.OP_array_length:
            return Normal

        case ir.OP_new_instance, ir.OP_new_array, ir.OP_filled_new_array, ir.OP_filled_new_array_range:
            return Object

        case ir.OP_fill_array_data:
            return noDest(p.Op)

        case ir.OP_throw, ir.OP_goto, ir.OP_goto_16, ir.OP_goto_32:
            return noDest(p.Op)

        case ir.OP_packed_switch, ir.OP_sparse_switch:
            return noDest(p.Op)

        case ir.OP_cmpl_float, ir.OP_cmpg_float, ir.OP_cmpl_double, ir.OP_cmpg_double, ir.OP_cmp_long:
            return Normal

        case ir.OP_if_eq, ir.OP_if_ne, ir.OP_if_lt, ir.OP_if_ge, ir.OP_if_gt, ir.OP_if_le,
             ir.OP_if_eqz, ir.OP_if_nez, ir.OP_if_ltz, ir.OP_if_gez, ir.OP_if_gtz, ir.OP_if_lez:
            return noDest(p.Op)

        case ir.OP_aget, ir.OP_aget_boolean, ir.OP_aget_byte, ir.OP_aget_char, ir.OP_aget_short:
            return Normal

        case ir.OP_aget_wide   : return Wide
        case ir.OP_aget_object : return Object

        case ir.OP_aput, ir.OP_aput_wide, ir.OP_aput_object, ir.OP_aput_boolean,
             ir.OP_aput_byte, ir.OP_aput_char, ir.OP_aput_short:
            return noDest(p.Op)

        case ir.OP_iget, ir.OP_iget_boolean, ir.OP_iget_byte, ir.OP_iget_char, ir.OP_iget_short:
            return Normal

        case ir.OP_iget_wide   : return Wide
        case ir.OP_iget_object : return Object

        case ir.OP_iput, ir.OP_iput_wide, ir.OP_iput_object, ir.OP_iput_boolean,
             ir.OP_iput_byte, ir.OP_iput_char, ir.OP_iput_short:
            return noDest(p.Op)

        case ir.OP_sget, ir.OP_sget_boolean, ir.OP_sget_byte, ir.OP_sget_char, ir.OP_sget_short:
            return Normal

        case ir.OP_sget_wide   : return Wide
        case ir.OP_sget_object : return Object

        case ir.OP_sput, ir.OP_sput_wide, ir.OP_sput_object, ir.OP_sput_boolean,
             ir.OP_sput_byte, ir.OP_sput_char, ir.OP_sput_short:
            return noDest(p.Op)

        case ir.OP_invoke_virtual, ir.OP_invoke_super, ir.OP_invoke_direct,
             ir.OP_invoke_static, ir.OP_invoke_interface:
            return noDest(p.Op)

        case ir.OP_invoke_virtual_range, ir.OP_invoke_super_range, ir.OP_invoke_direct_range,
             ir.OP_invoke_static_range, ir.OP_invoke_interface_range:
            return notLowered(p.Op)

        case ir.OP_neg_int, ir.OP_not_int, ir.OP_neg_float:
            return Normal

        case ir.OP_neg_long, ir.OP_not_long, ir.OP_neg_double:
            return Wide

        case ir.OP_int_to_long, ir.OP_int_to_double, ir.OP_long_to_double,
             ir.OP_float_to_long, ir.OP_float_to_double, ir.OP_double_to_long:
            return Wide

        case ir.OP_int_to_float, ir.OP_long_to_int, ir.OP_long_to_float,
             ir.OP_float_to_int, ir.OP_double_to_int, ir.OP_double_to_float,
             ir.OP_int_to_byte, ir.OP_int_to_char, ir.OP_int_to_short:
            return Normal

        case ir.OP_add_int, ir.OP_sub_int, ir.OP_mul_int, ir.OP_div_int, ir.OP_rem_int,
             ir.OP_and_int, ir.OP_or_int, ir.OP_xor_int, ir.OP_shl_int, ir.OP_shr_int, ir.OP_ushr_int:
            return Normal

        case ir.OP_add_long, ir.OP_sub_long, ir.OP_mul_long, ir.OP_div_long, ir.OP_rem_long,
             ir.OP_and_long, ir.OP_or_long, ir.OP_xor_long, ir.OP_shl_long, ir.OP_shr_long, ir.OP_ushr_long:
            return Wide

        case ir.OP_add_float, ir.OP_sub_float, ir.OP_mul_float, ir.OP_div_float, ir.OP_rem_float:
            return Normal

        case ir.OP_add_double, ir.OP_sub_double, ir.OP_mul_double, ir.OP_div_double, ir.OP_rem_double:
            return Wide

        case ir.OP_add_int_2addr, ir.OP_sub_int_2addr, ir.OP_mul_int_2addr, ir.OP_div_int_2addr,
             ir.OP_rem_int_2addr, ir.OP_and_int_2addr, ir.OP_or_int_2addr, ir.OP_xor_int_2addr,
             ir.OP_shl_int_2addr, ir.OP_shr_int_2addr, ir.OP_ushr_int_2addr,
             ir.OP_add_long_2addr, ir.OP_sub_long_2addr, ir.OP_mul_long_2addr, ir.OP_div_long_2addr,
             ir.OP_rem_long_2addr, ir.OP_and_long_2addr, ir.OP_or_long_2addr, ir.OP_xor_long_2addr,
             ir.OP_shl_long_2addr, ir.OP_shr_long_2addr, ir.OP_ushr_long_2addr,
             ir.OP_add_float_2addr, ir.OP_sub_float_2addr, ir.OP_mul_float_2addr,
             ir.OP_div_float_2addr, ir.OP_rem_float_2addr,
             ir.OP_add_double_2addr, ir.OP_sub_double_2addr, ir.OP_mul_double_2addr,
             ir.OP_div_double_2addr, ir.OP_rem_double_2addr:
            return notLowered(p.Op)

        case ir.OP_add_int_lit16, ir.OP_rsub_int, ir.OP_mul_int_lit16, ir.OP_div_int_lit16,
             ir.OP_rem_int_lit16, ir.OP_and_int_lit16, ir.OP_or_int_lit16, ir.OP_xor_int_lit16,
             ir.OP_add_int_lit8, ir.OP_rsub_int_lit8, ir.OP_mul_int_lit8, ir.OP_div_int_lit8,
             ir.OP_rem_int_lit8, ir.OP_and_int_lit8, ir.OP_or_int_lit8, ir.OP_xor_int_lit8,
             ir.OP_shl_int_lit8, ir.OP_shr_int_lit8, ir.OP_ushr_int_lit8:
            return Normal

        case ir.OP_load_param        : return Normal
        case ir.OP_load_param_object : return Object
        case ir.OP_load_param_wide   : return Wide

        default:
            return unknownOp(p.Op)
    }
}

// invokeSrcKind maps an invoke operand to the kind demanded by the method
// proto. Non-static invokes have an implicit `this` argument that is not
// reflected in the proto, so operand 0 is the receiver and the remaining
// indices are shifted by one before indexing the argument list.
func invokeSrcKind(p *ir.Instruction, i int) RegisterType {
    if p.Op != ir.OP_invoke_static {
        if i == 0 {
            return Object
        }
        i--
    }

    /* the operand count must match the proto */
    args := p.Method.Proto.Args
    if i >= len(args) {
        return noSrc(p.Op, i)
    }

    /* classify by the argument type */
    vt := args[i]
    if vt.IsWide() {
        return Wide
    } else if vt.IsPrimitive() {
        return Normal
    } else {
        return Object
    }
}

// SrcKind returns the kind expected in the i-th source operand, zero-based in
// the instruction's observed source order. Querying an opcode with no sources
// or an out-of-range index is a programmer error.
func SrcKind(p *ir.Instruction, i int) RegisterType {
    if i < 0 || i >= p.SrcCount() {
        return noSrc(p.Op, i)
    }

    switch p.Op {
        case ir.OP_nop:
            return noSrc(p.Op, i)

        case ir.OP_move, ir.OP_move_from16, ir.OP_move_16:
            return Normal

        case ir.OP_move_wide, ir.OP_move_wide_from16, ir.OP_move_wide_16:
            return Wide

        case ir.OP_move_object, ir.OP_move_object_from16, ir.OP_move_object_16:
            return Object

        case ir.OP_move_result, ir.OP_move_result_wide, ir.OP_move_result_object, ir.OP_move_exception:
            return noSrc(p.Op, i)

        case ir.OP_return_void   : return noSrc(p.Op, i)
        case ir.OP_return        : return Normal
        case ir.OP_return_wide   : return Wide
        case ir.OP_return_object : return Object

        case ir.OP_const_4, ir.OP_const_16, ir.OP_const, ir.OP_const_high16,
             ir.OP_const_wide_16, ir.OP_const_wide_32, ir.OP_const_wide, ir.OP_const_wide_high16,
             ir.OP_const_string, ir.OP_const_string_jumbo, ir.OP_const_class:
            return noSrc(p.Op, i)

        case ir.OP_monitor_enter, ir.OP_monitor_exit, ir.OP_throw:
            return Object

        case ir.OP_goto, ir.OP_goto_16, ir.OP_goto_32:
            return noSrc(p.Op, i)

        case ir.OP_neg_int, ir.OP_not_int, ir.OP_neg_float:
            return Normal

        case ir.OP_neg_long, ir.OP_not_long, ir.OP_neg_double:
            return Wide

        case ir.OP_int_to_long, ir.OP_int_to_float, ir.OP_int_to_double,
             ir.OP_int_to_byte, ir.OP_int_to_char, ir.OP_int_to_short:
            return Normal

        case ir.OP_long_to_int, ir.OP_long_to_float, ir.OP_long_to_double:
            return Wide

        case ir.OP_float_to_int, ir.OP_float_to_long, ir.OP_float_to_double:
            return Normal

        case ir.OP_double_to_int, ir.OP_double_to_long, ir.OP_double_to_float:
            return Wide

        case ir.OP_array_length:
            return Object

        case ir.OP_cmpl_float, ir.OP_cmpg_float:
            return Normal

        case ir.OP_cmpl_double, ir.OP_cmpg_double, ir.OP_cmp_long:
            return Wide

        /* conditionals accept either primitive or reference inputs, so the
         * classifier deliberately yields top and lets dataflow resolve it */
        case ir.OP_if_eq, ir.OP_if_ne, ir.OP_if_lt, ir.OP_if_ge, ir.OP_if_gt, ir.OP_if_le,
             ir.OP_if_eqz, ir.OP_if_nez, ir.OP_if_ltz, ir.OP_if_gez, ir.OP_if_gtz, ir.OP_if_lez:
            return Unknown

        case ir.OP_aget, ir.OP_aget_wide, ir.OP_aget_object, ir.OP_aget_boolean,
             ir.OP_aget_byte, ir.OP_aget_char, ir.OP_aget_short:
            if i == 0 {
                return Object
            } else {
                return Normal
            }

        case ir.OP_aput, ir.OP_aput_boolean, ir.OP_aput_byte, ir.OP_aput_char, ir.OP_aput_short:
            if i == 1 {
                return Object
            } else {
                return Normal
            }

        case ir.OP_aput_wide:
            if i == 1 {
                return Object
            } else if i == 2 {
                return Normal
            } else {
                return Wide
            }

        case ir.OP_aput_object:
            if i <= 1 {
                return Object
            } else {
                return Normal
            }

        case ir.OP_add_int, ir.OP_sub_int, ir.OP_mul_int, ir.OP_div_int, ir.OP_rem_int,
             ir.OP_and_int, ir.OP_or_int, ir.OP_xor_int, ir.OP_shl_int, ir.OP_shr_int, ir.OP_ushr_int:
            return Normal

        case ir.OP_add_long, ir.OP_sub_long, ir.OP_mul_long, ir.OP_div_long, ir.OP_rem_long,
             ir.OP_and_long, ir.OP_or_long, ir.OP_xor_long:
            return Wide

        /* long shifts are asymmetric: the shift amount is a 32-bit value */
        case ir.OP_shl_long, ir.OP_shr_long, ir.OP_ushr_long:
            if i == 0 {
                return Wide
            } else {
                return Normal
            }

        case ir.OP_add_float, ir.OP_sub_float, ir.OP_mul_float, ir.OP_div_float, ir.OP_rem_float:
            return Normal

        case ir.OP_add_double, ir.OP_sub_double, ir.OP_mul_double, ir.OP_div_double, ir.OP_rem_double:
            return Wide

        case ir.OP_add_int_lit16, ir.OP_rsub_int, ir.OP_mul_int_lit16, ir.OP_div_int_lit16,
             ir.OP_rem_int_lit16, ir.OP_and_int_lit16, ir.OP_or_int_lit16, ir.OP_xor_int_lit16,
             ir.OP_add_int_lit8, ir.OP_rsub_int_lit8, ir.OP_mul_int_lit8, ir.OP_div_int_lit8,
             ir.OP_rem_int_lit8, ir.OP_and_int_lit8, ir.OP_or_int_lit8, ir.OP_xor_int_lit8,
             ir.OP_shl_int_lit8, ir.OP_shr_int_lit8, ir.OP_ushr_int_lit8:
            return Normal

        case ir.OP_fill_array_data:
            return Object

        case ir.OP_packed_switch, ir.OP_sparse_switch:
            return Unknown

        case ir.OP_iget, ir.OP_iget_wide, ir.OP_iget_object, ir.OP_iget_boolean,
             ir.OP_iget_byte, ir.OP_iget_char, ir.OP_iget_short:
            if i != 0 {
                return noSrc(p.Op, i)
            }
            return Object

        case ir.OP_iput, ir.OP_iput_boolean, ir.OP_iput_byte, ir.OP_iput_char, ir.OP_iput_short:
            if i == 1 {
                return Object
            } else {
                return Normal
            }

        case ir.OP_iput_wide:
            if i == 1 {
                return Object
            } else {
                return Wide
            }

        case ir.OP_iput_object:
            return Object

        case ir.OP_sget, ir.OP_sget_wide, ir.OP_sget_object, ir.OP_sget_boolean,
             ir.OP_sget_byte, ir.OP_sget_char, ir.OP_sget_short:
            return noSrc(p.Op, i)

        case ir.OP_sput        : return Normal
        case ir.OP_sput_wide   : return Wide
        case ir.OP_sput_object : return Object

        case ir.OP_sput_boolean, ir.OP_sput_byte, ir.OP_sput_char, ir.OP_sput_short:
            return Normal

        case ir.OP_invoke_virtual, ir.OP_invoke_super, ir.OP_invoke_direct,
             ir.OP_invoke_static, ir.OP_invoke_interface:
            return invokeSrcKind(p, i)

        case ir.OP_invoke_virtual_range, ir.OP_invoke_super_range, ir.OP_invoke_direct_range,
             ir.OP_invoke_static_range, ir.OP_invoke_interface_range:
            return notLowered(p.Op)

        case ir.OP_check_cast, ir.OP_instance_of:
            return Object

        case ir.OP_new_instance:
            return noSrc(p.Op, i)

        case ir.OP_new_array:
            return Normal

        case ir.OP_filled_new_array:
            if p.Type.ElementType().IsPrimitive() {
                return Normal
            } else {
                return Object
            }

        case ir.OP_filled_new_array_range:
            return notLowered(p.Op)

        case ir.OP_load_param, ir.OP_load_param_object, ir.OP_load_param_wide:
            return noSrc(p.Op, i)

        case ir.OP_add_int_2addr, ir.OP_sub_int_2addr, ir.OP_mul_int_2addr, ir.OP_div_int_2addr,
             ir.OP_rem_int_2addr, ir.OP_and_int_2addr, ir.OP_or_int_2addr, ir.OP_xor_int_2addr,
             ir.OP_shl_int_2addr, ir.OP_shr_int_2addr, ir.OP_ushr_int_2addr,
             ir.OP_add_long_2addr, ir.OP_sub_long_2addr, ir.OP_mul_long_2addr, ir.OP_div_long_2addr,
             ir.OP_rem_long_2addr, ir.OP_and_long_2addr, ir.OP_or_long_2addr, ir.OP_xor_long_2addr,
             ir.OP_shl_long_2addr, ir.OP_shr_long_2addr, ir.OP_ushr_long_2addr,
             ir.OP_add_float_2addr, ir.OP_sub_float_2addr, ir.OP_mul_float_2addr,
             ir.OP_div_float_2addr, ir.OP_rem_float_2addr,
             ir.OP_add_double_2addr, ir.OP_sub_double_2addr, ir.OP_mul_double_2addr,
             ir.OP_div_double_2addr, ir.OP_rem_double_2addr:
            return notLowered(p.Op)

        default:
            return unknownOp(p.Op)
    }
}

func moveOpForType(rt RegisterType) ir.OpCode {
    switch rt {
        case Zero, Normal:
            return ir.OP_move_16
        case Object:
            return ir.OP_move_object_16
        case Wide:
            return ir.OP_move_wide_16
        case Unknown, Conflict:
            panic(fmt.Sprintf("regalloc: cannot generate move for register type %s", rt))
        default:
            panic(fmt.Sprintf("invalid RegisterType: 0x%02x", uint8(rt)))
    }
}

// GenMove builds a register-to-register copy for a ground kind. The widest
// 16-bit encodings are used so that arbitrary register numbers fit. The
// returned instruction is freshly allocated and owned by the caller.
func GenMove(rt RegisterType, dst ir.Reg, src ir.Reg) *ir.Instruction {
    return ir.New(moveOpForType(rt)).SetDst(dst).SetSrcs(src)
}
