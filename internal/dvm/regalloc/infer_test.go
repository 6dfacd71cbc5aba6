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
    `testing`

    `github.com/cloudwego/dexopt/internal/dvm/cfg`
    `github.com/cloudwego/dexopt/internal/dvm/ir`
    `github.com/stretchr/testify/require`
)

func TestTypeInference_ZeroAsNull(t *testing.T) {
    env := AnalyzeTypes(cfg.BuildCFG([]*ir.Instruction {
        ir.New(ir.OP_const_4).SetDst(0).SetLit(0),
        ir.New(ir.OP_monitor_enter).SetSrcs(0),
        ir.New(ir.OP_return_void),
    }))

    /* the zero literal is narrowed down to OBJECT by the reference use */
    require.Equal(t, Object, env.Get(0))
}

func TestTypeInference_ZeroAsNumber(t *testing.T) {
    env := AnalyzeTypes(cfg.BuildCFG([]*ir.Instruction {
        ir.New(ir.OP_const_4).SetDst(0).SetLit(0),
        ir.New(ir.OP_add_int).SetDst(1).SetSrcs(0, 0),
        ir.New(ir.OP_return_void),
    }))
    require.Equal(t, Normal, env.Get(0))
    require.Equal(t, Normal, env.Get(1))
}

func TestTypeInference_JoinSequence(t *testing.T) {
    env := AnalyzeTypes(cfg.BuildCFG([]*ir.Instruction {
        ir.New(ir.OP_const_4).SetDst(0).SetLit(0),      // v0: ZERO
        ir.New(ir.OP_if_eqz).SetSrcs(0).SetBranch(3),   // v0 stays, UNKNOWN is top
        ir.New(ir.OP_throw).SetSrcs(0),                 // v0: join OBJECT
        ir.New(ir.OP_add_int).SetDst(1).SetSrcs(0, 0),  // v0: join NORMAL -> CONFLICT
        ir.New(ir.OP_return_void),
    }))
    require.Equal(t, Conflict, env.Get(0))
    require.Equal(t, Normal, env.Get(1))
    require.Equal(t, []ir.Reg { 0 }, ConflictRegs(env))
    DumpTypes(env)
}

func TestTypeInference_ConditionalStaysTop(t *testing.T) {
    env := AnalyzeTypes(cfg.BuildCFG([]*ir.Instruction {
        ir.New(ir.OP_load_param).SetDst(0),
        ir.New(ir.OP_if_eqz).SetSrcs(1).SetBranch(3),
        ir.New(ir.OP_return_void),
        ir.New(ir.OP_return_void),
    }))

    /* v1 is only seen by the conditional, so nothing is known about it */
    require.Equal(t, Unknown, env.Get(1))
    require.Equal(t, Normal, env.Get(0))
}

func TestTypeInference_Loop(t *testing.T) {
    env := AnalyzeTypes(cfg.BuildCFG([]*ir.Instruction {
        ir.New(ir.OP_const_4).SetDst(0).SetLit(1),
        ir.New(ir.OP_add_int).SetDst(0).SetSrcs(0, 0),
        ir.New(ir.OP_if_nez).SetSrcs(0).SetBranch(1),
        ir.New(ir.OP_return_void),
    }))
    require.Equal(t, Normal, env.Get(0))
    require.Empty(t, ConflictRegs(env))
}

func TestTypeInference_WideFlow(t *testing.T) {
    env := AnalyzeTypes(cfg.BuildCFG([]*ir.Instruction {
        ir.New(ir.OP_const_wide_16).SetDst(0).SetLit(0),
        ir.New(ir.OP_add_long).SetDst(2).SetSrcs(0, 0),
        ir.New(ir.OP_long_to_int).SetDst(4).SetSrcs(2),
        ir.New(ir.OP_return).SetSrcs(4),
    }))
    require.Equal(t, Wide, env.Get(0))
    require.Equal(t, Wide, env.Get(2))
    require.Equal(t, Normal, env.Get(4))
}

func TestTypeInference_InvokeArgs(t *testing.T) {
    mm := mkmethod(t, "LFoo;", "bar", "(IJ)V")
    env := AnalyzeTypes(cfg.BuildCFG([]*ir.Instruction {
        ir.New(ir.OP_const_4).SetDst(1).SetLit(0),
        ir.New(ir.OP_invoke_virtual).SetSrcs(0, 1, 2).SetMethod(mm),
        ir.New(ir.OP_return_void),
    }))
    require.Equal(t, Object, env.Get(0))
    require.Equal(t, Normal, env.Get(1))
    require.Equal(t, Wide, env.Get(2))
}

func TestTypeEnv_String(t *testing.T) {
    env := TypeEnv { 0: Zero, 1: Wide }
    require.Equal(t, "{v0: ZERO, v1: WIDE}", env.String())
}
