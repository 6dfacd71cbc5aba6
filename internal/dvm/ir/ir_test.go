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
    `testing`

    `github.com/stretchr/testify/require`
)

func TestOpCode_Names(t *testing.T) {
    require.Equal(t, "nop", OP_nop.String())
    require.Equal(t, "const/4", OP_const_4.String())
    require.Equal(t, "const-wide/high16", OP_const_wide_high16.String())
    require.Equal(t, "move-object/from16", OP_move_object_from16.String())
    require.Equal(t, "add-int/2addr", OP_add_int_2addr.String())
    require.Equal(t, "rsub-int", OP_rsub_int.String())
    require.Equal(t, "rsub-int/lit8", OP_rsub_int_lit8.String())
    require.Equal(t, "invoke-interface/range", OP_invoke_interface_range.String())
    require.Equal(t, "load-param-wide", OP_load_param_wide.String())
    require.Panics(t, func() { _ = OpCode(0xffff).String() })
}

func TestOpCode_HasDest(t *testing.T) {
    require.True(t, OP_move.HasDest())
    require.True(t, OP_const_4.HasDest())
    require.True(t, OP_check_cast.HasDest())
    require.True(t, OP_aget_wide.HasDest())
    require.True(t, OP_load_param_object.HasDest())

    require.False(t, OP_nop.HasDest())
    require.False(t, OP_return_void.HasDest())
    require.False(t, OP_return_wide.HasDest())
    require.False(t, OP_goto.HasDest())
    require.False(t, OP_if_eqz.HasDest())
    require.False(t, OP_aput_object.HasDest())
    require.False(t, OP_iput_wide.HasDest())
    require.False(t, OP_sput.HasDest())
    require.False(t, OP_throw.HasDest())
    require.False(t, OP_monitor_enter.HasDest())
    require.False(t, OP_packed_switch.HasDest())
    require.False(t, OP_fill_array_data.HasDest())
    require.False(t, OP_invoke_virtual.HasDest())
    require.False(t, OP_invoke_static_range.HasDest())
}

func TestOpCode_Terminators(t *testing.T) {
    require.True(t, OP_goto.IsTerminator())
    require.True(t, OP_goto_32.IsTerminator())
    require.True(t, OP_if_le.IsTerminator())
    require.True(t, OP_if_gtz.IsTerminator())
    require.True(t, OP_sparse_switch.IsTerminator())
    require.True(t, OP_return_object.IsTerminator())
    require.True(t, OP_throw.IsTerminator())

    require.False(t, OP_move.IsTerminator())
    require.False(t, OP_invoke_direct.IsTerminator())
    require.False(t, OP_cmp_long.IsTerminator())
}

func TestInstruction_Disassemble(t *testing.T) {
    p := New(OP_const_4).SetDst(0).SetLit(21)
    require.Contains(t, p.String(), "const/4")
    require.Contains(t, p.String(), "v0, #21")

    q := New(OP_aput_wide).SetSrcs(0, 1, 2)
    require.Contains(t, q.String(), "aput-wide")
    require.Contains(t, q.String(), "v0, v1, v2")

    require.Equal(t, "nop", New(OP_nop).String())
    require.Equal(t, "return-void", New(OP_return_void).String())
}

func TestInstruction_DisassembleInvoke(t *testing.T) {
    pp, err := ParseProto("(IJ)V")
    require.NoError(t, err)
    mm := &MethodRef { Class: "LFoo;", Name: "bar", Proto: pp }
    p := New(OP_invoke_virtual).SetSrcs(1, 2, 3).SetMethod(mm)
    require.Contains(t, p.String(), "invoke-virtual")
    require.Contains(t, p.String(), "{v1, v2, v3}")
    require.Contains(t, p.String(), "LFoo;.bar:(IJ)V")
}

func TestInstruction_SrcAt(t *testing.T) {
    p := New(OP_move).SetDst(0).SetSrcs(1)
    require.Equal(t, Reg(1), p.SrcAt(0))
    require.Panics(t, func() { p.SrcAt(1) })
    require.Panics(t, func() { p.SrcAt(-1) })
}

func TestInstruction_SetSrc(t *testing.T) {
    p := New(OP_aput).SetSrc(2, 7)
    require.Equal(t, 3, p.SrcCount())
    require.Equal(t, Reg(7), p.SrcAt(2))
    require.Equal(t, Reg(0), p.SrcAt(0))
}
