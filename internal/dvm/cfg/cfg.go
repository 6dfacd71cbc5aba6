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
    `fmt`

    `github.com/cloudwego/dexopt/internal/dvm/ir`
    `github.com/oleiade/lane`
)

// BasicBlock is a maximal single-entry, single-exit instruction sequence.
// The last instruction is the terminator unless the block falls through.
type BasicBlock struct {
    Id   int
    Ins  []*ir.Instruction
    Pred []*BasicBlock
    Succ []*BasicBlock
}

func (self *BasicBlock) String() string {
    return fmt.Sprintf("bb_%d", self.Id)
}

// CFG is the control-flow graph of a single method body.
type CFG struct {
    Root   *BasicBlock
    Blocks []*BasicBlock
}

type GraphBuilder struct {
    Pin   map[int]bool
    Graph map[int]*BasicBlock
}

func CreateGraphBuilder() *GraphBuilder {
    return &GraphBuilder {
        Pin   : make(map[int]bool),
        Graph : make(map[int]*BasicBlock),
    }
}

func (self *GraphBuilder) scan(p []*ir.Instruction) {
    for i, v := range p {
        if v.Op.IsGoto() || v.Op.IsConditional() {
            self.Pin[v.Br] = true
        } else if v.Op.IsSwitch() {
            for _, pc := range v.Sw {
                self.Pin[pc] = true
            }
        }

        /* the instruction after a terminator starts a new block */
        if v.Op.IsTerminator() && i + 1 < len(p) {
            self.Pin[i + 1] = true
        }
    }
}

func (self *GraphBuilder) block(p []*ir.Instruction, i int, bb *BasicBlock) {
    for i < len(p) {
        v := p[i]
        bb.Ins = append(bb.Ins, v)

        /* stop at the terminator */
        if v.Op.IsTerminator() {
            break
        }

        /* hit a merge point, link to the next block */
        if i++; self.Pin[i] {
            bb.Succ = append(bb.Succ, self.branch(p, i))
            return
        }
    }

    /* end of the method body */
    if i >= len(p) {
        return
    }

    /* returns and throws leave the method */
    tr := p[i]
    if tr.Op.IsReturn() || tr.Op == ir.OP_throw {
        return
    }

    /* conditionals and switches may fall through */
    if !tr.Op.IsGoto() {
        bb.Succ = append(bb.Succ, self.branch(p, i + 1))
    }

    /* single branch target */
    if !tr.Op.IsSwitch() {
        bb.Succ = append(bb.Succ, self.branch(p, tr.Br))
        return
    }

    /* add every branch of the switch instruction */
    for _, pc := range tr.Sw {
        bb.Succ = append(bb.Succ, self.branch(p, pc))
    }
}

func (self *GraphBuilder) branch(p []*ir.Instruction, i int) *BasicBlock {
    var ok bool
    var bb *BasicBlock

    /* check for existing basic blocks */
    if bb, ok = self.Graph[i]; ok {
        return bb
    }

    /* create and process the new block */
    bb = new(BasicBlock)
    bb.Id = len(self.Graph)
    self.Graph[i] = bb
    self.block(p, i, bb)
    return bb
}

func (self *GraphBuilder) Build(p []*ir.Instruction) *CFG {
    if len(p) == 0 {
        panic("cfg: empty method body")
    }

    /* mark the block leaders, then grow the graph from the entry point */
    self.scan(p)
    root := self.branch(p, 0)

    /* accumulate the blocks in discovery order, linking predecessors */
    ret := &CFG { Root: root }
    vis := make(map[int]bool, len(self.Graph))

    /* traverse the graph with BFS */
    q := lane.NewQueue()
    vis[root.Id] = true
    for q.Enqueue(root); !q.Empty(); {
        v := q.Dequeue()
        bb := v.(*BasicBlock)

        /* add to block list */
        ret.Blocks = append(ret.Blocks, bb)

        /* add all successors into queue */
        for _, r := range bb.Succ {
            r.Pred = append(r.Pred, bb)
            if !vis[r.Id] {
                vis[r.Id] = true
                q.Enqueue(r)
            }
        }
    }
    return ret
}

// BuildCFG splits a normalized instruction list into basic blocks.
func BuildCFG(p []*ir.Instruction) *CFG {
    return CreateGraphBuilder().Build(p)
}

// PostOrder visits every reachable block in post-order with an explicit
// stack, no recursion.
func (self *CFG) PostOrder(fn func(bb *BasicBlock)) {
    vis := make(map[int]bool, len(self.Blocks))
    st := lane.NewStack()
    st.Push(self.Root)
    vis[self.Root.Id] = true

    /* DFS with a pending-successor marker per block */
    idx := make(map[int]int, len(self.Blocks))
    for !st.Empty() {
        bb := st.Head().(*BasicBlock)
        i := idx[bb.Id]

        /* all successors done, emit the block */
        if i >= len(bb.Succ) {
            st.Pop()
            fn(bb)
            continue
        }

        /* descend into the next unvisited successor */
        idx[bb.Id] = i + 1
        if nx := bb.Succ[i]; !vis[nx.Id] {
            vis[nx.Id] = true
            st.Push(nx)
        }
    }
}

// ReversePostOrder returns the reverse post-order block sequence, the
// canonical iteration order for forward dataflow.
func (self *CFG) ReversePostOrder() []*BasicBlock {
    buf := make([]*BasicBlock, 0, len(self.Blocks))
    self.PostOrder(func(bb *BasicBlock) { buf = append(buf, bb) })

    /* reverse in place */
    for i, j := 0, len(buf) - 1; i < j; i, j = i + 1, j - 1 {
        buf[i], buf[j] = buf[j], buf[i]
    }
    return buf
}
