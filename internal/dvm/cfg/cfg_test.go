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

package cfg

import (
    `testing`

    `github.com/cloudwego/dexopt/internal/dvm/ir`
    `github.com/stretchr/testify/require`
)

func TestCFG_Straightline(t *testing.T) {
    g := BuildCFG([]*ir.Instruction {
        ir.New(ir.OP_const_4).SetDst(0).SetLit(1),
        ir.New(ir.OP_add_int).SetDst(1).SetSrcs(0, 0),
        ir.New(ir.OP_return_void),
    })
    require.Len(t, g.Blocks, 1)
    require.Len(t, g.Root.Ins, 3)
    require.Empty(t, g.Root.Succ)
    require.Empty(t, g.Root.Pred)
}

func TestCFG_Diamond(t *testing.T) {
    g := BuildCFG([]*ir.Instruction {
        ir.New(ir.OP_const_4).SetDst(0).SetLit(0),     // 0: b0
        ir.New(ir.OP_if_eqz).SetSrcs(0).SetBranch(4),  // 1: b0 term
        ir.New(ir.OP_const_4).SetDst(1).SetLit(1),     // 2: b1
        ir.New(ir.OP_goto).SetBranch(5),               // 3: b1 term
        ir.New(ir.OP_const_4).SetDst(1).SetLit(2),     // 4: b2
        ir.New(ir.OP_return_void),                     // 5: b3
    })
    require.Len(t, g.Blocks, 4)

    /* the entry block branches both ways */
    require.Len(t, g.Root.Succ, 2)
    require.Len(t, g.Root.Ins, 2)

    /* both arms merge at the return */
    var exit *BasicBlock
    for _, bb := range g.Blocks {
        if len(bb.Succ) == 0 {
            require.Nil(t, exit)
            exit = bb
        }
    }
    require.NotNil(t, exit)
    require.Len(t, exit.Pred, 2)
    require.Equal(t, ir.OP_return_void, exit.Ins[0].Op)
}

func TestCFG_Switch(t *testing.T) {
    g := BuildCFG([]*ir.Instruction {
        ir.New(ir.OP_load_param).SetDst(0),            // 0: b0
        ir.New(ir.OP_packed_switch).SetSrcs(0).SetSwitch(3, 4), // 1: b0 term
        ir.New(ir.OP_return_void),                     // 2: fallthrough
        ir.New(ir.OP_return_void),                     // 3: case 0
        ir.New(ir.OP_return_void),                     // 4: case 1
    })
    require.Len(t, g.Blocks, 4)
    require.Len(t, g.Root.Succ, 3)
}

func TestCFG_Loop(t *testing.T) {
    g := BuildCFG([]*ir.Instruction {
        ir.New(ir.OP_const_4).SetDst(0).SetLit(1),     // 0: b0
        ir.New(ir.OP_add_int).SetDst(0).SetSrcs(0, 0), // 1: b1, loop head
        ir.New(ir.OP_if_nez).SetSrcs(0).SetBranch(1),  // 2: b1 term
        ir.New(ir.OP_return_void),                     // 3: b2
    })
    require.Len(t, g.Blocks, 3)

    /* the loop body is its own predecessor */
    var head *BasicBlock
    for _, bb := range g.Blocks {
        if len(bb.Succ) == 2 {
            head = bb
        }
    }
    require.NotNil(t, head)
    require.Contains(t, head.Succ, head)
    require.Contains(t, head.Pred, head)
}

func TestCFG_PostOrder(t *testing.T) {
    g := BuildCFG([]*ir.Instruction {
        ir.New(ir.OP_const_4).SetDst(0).SetLit(0),
        ir.New(ir.OP_if_eqz).SetSrcs(0).SetBranch(3),
        ir.New(ir.OP_return_void),
        ir.New(ir.OP_return_void),
    })

    /* the entry block is emitted last in post-order, first in RPO */
    var seq []*BasicBlock
    g.PostOrder(func(bb *BasicBlock) { seq = append(seq, bb) })
    require.Len(t, seq, 3)
    require.Equal(t, g.Root, seq[len(seq) - 1])

    rpo := g.ReversePostOrder()
    require.Equal(t, g.Root, rpo[0])
    require.Len(t, rpo, 3)
}

func TestCFG_Empty(t *testing.T) {
    require.Panics(t, func() { BuildCFG(nil) })
}
