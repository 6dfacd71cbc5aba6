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
    `sort`
    `strings`

    `github.com/cloudwego/dexopt/internal/dvm/cfg`
    `github.com/cloudwego/dexopt/internal/dvm/ir`
    `github.com/davecgh/go-spew/spew`
    `github.com/oleiade/lane`
)

// TypeEnv maps every register to the join of all kinds observed for it.
// A register that was never observed is Unknown.
type TypeEnv map[ir.Reg]RegisterType

func (self TypeEnv) Get(r ir.Reg) RegisterType {
    if rt, ok := self[r]; ok {
        return rt
    } else {
        return Unknown
    }
}

func (self TypeEnv) join(r ir.Reg, rt RegisterType) bool {
    nv := Join(self.Get(r), rt)
    if nv == self.Get(r) {
        return false
    }
    self[r] = nv
    return true
}

func (self TypeEnv) merge(other TypeEnv) bool {
    ret := false
    for r, rt := range other {
        if self.join(r, rt) {
            ret = true
        }
    }
    return ret
}

func (self TypeEnv) String() string {
    nb := len(self)
    rr := make([]ir.Reg, 0, nb)
    buf := make([]string, 0, nb)

    /* sort by register number */
    for r := range self {
        rr = append(rr, r)
    }
    sort.Slice(rr, func(i int, j int) bool { return rr[i] < rr[j] })

    /* convert every binding */
    for _, r := range rr {
        buf = append(buf, fmt.Sprintf("%s: %s", r, self[r]))
    }

    /* join them together */
    return fmt.Sprintf(
        "{%s}",
        strings.Join(buf, ", "),
    )
}

// TypeInference assigns a kind to every register of a method by propagating
// classifier results over the CFG to a fixed point. Kinds only move downwards
// in the lattice and the lattice is finite, so the worklist terminates.
type TypeInference struct{}

func (self TypeInference) transfer(env TypeEnv, p *ir.Instruction) bool {
    ret := false

    /* sources first: every use site constrains the register */
    for i := range p.Src {
        if env.join(p.Src[i], SrcKind(p, i)) {
            ret = true
        }
    }

    /* then the definition */
    if p.Op.HasDest() {
        if env.join(p.Dst, DestKind(p)) {
            ret = true
        }
    }
    return ret
}

func (self TypeInference) Apply(g *cfg.CFG) TypeEnv {
    out := make(map[int]TypeEnv, len(g.Blocks))
    inq := make(map[int]bool, len(g.Blocks))

    /* every block starts with an empty environment */
    for _, bb := range g.Blocks {
        out[bb.Id] = make(TypeEnv)
    }

    /* seed the worklist in reverse post-order so forward edges settle first */
    q := lane.NewQueue()
    for _, bb := range g.ReversePostOrder() {
        q.Enqueue(bb)
        inq[bb.Id] = true
    }

    /* iterate to a fixed point */
    for !q.Empty() {
        v := q.Dequeue()
        bb := v.(*cfg.BasicBlock)
        inq[bb.Id] = false

        /* entry environment is the join over the predecessors */
        env := make(TypeEnv)
        for _, p := range bb.Pred {
            env.merge(out[p.Id])
        }

        /* flow through the block */
        for _, p := range bb.Ins {
            self.transfer(env, p)
        }

        /* no growth, nothing to propagate */
        if !out[bb.Id].merge(env) {
            continue
        }

        /* re-examine the successors */
        for _, s := range bb.Succ {
            if !inq[s.Id] {
                inq[s.Id] = true
                q.Enqueue(s)
            }
        }
    }

    /* the method-wide assignment is the join over all blocks */
    ret := make(TypeEnv)
    for _, env := range out {
        ret.merge(env)
    }
    return ret
}

// AnalyzeTypes runs type inference over a method CFG and returns the
// fixed-point kind assignment.
func AnalyzeTypes(g *cfg.CFG) TypeEnv {
    return TypeInference{}.Apply(g)
}

// ConflictRegs returns the registers that ended up at the lattice bottom,
// in ascending order. These are not errors: the allocator decides whether
// to split or reject them.
func ConflictRegs(env TypeEnv) []ir.Reg {
    nb := len(env)
    rr := make([]ir.Reg, 0, nb)

    /* extract the conflicting registers */
    for r, rt := range env {
        if rt == Conflict {
            rr = append(rr, r)
        }
    }

    /* sort by register number */
    sort.Slice(rr, func(i int, j int) bool { return rr[i] < rr[j] })
    return rr
}

// DumpTypes dumps the inferred kinds for debugging.
func DumpTypes(env TypeEnv) {
    spew.Config.SortKeys = true
    spew.Dump(env)
}
