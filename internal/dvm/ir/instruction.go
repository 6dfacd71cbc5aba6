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
    `strings`
)

// Reg is a virtual register number. Wide values occupy the pair (r, r + 1).
type Reg uint32

func (self Reg) String() string {
    return fmt.Sprintf("v%d", uint32(self))
}

// Instruction is a single Dalvik instruction after normalization. Operand
// registers are observed in source order: for invokes this is the argument
// order with the receiver first, for array writes it is (value, array, index).
type Instruction struct {
    Op     OpCode
    Dst    Reg
    Src    []Reg
    Lit    int64
    Method *MethodRef
    Type   *TypeRef
    Br     int
    Sw     []int
}

func New(op OpCode) *Instruction {
    return &Instruction { Op: op }
}

func (self *Instruction) SetDst(r Reg) *Instruction {
    self.Dst = r
    return self
}

func (self *Instruction) SetSrcs(rr ...Reg) *Instruction {
    self.Src = rr
    return self
}

func (self *Instruction) SetSrc(i int, r Reg) *Instruction {
    for len(self.Src) <= i {
        self.Src = append(self.Src, 0)
    }
    self.Src[i] = r
    return self
}

func (self *Instruction) SetLit(v int64) *Instruction {
    self.Lit = v
    return self
}

func (self *Instruction) SetMethod(m *MethodRef) *Instruction {
    self.Method = m
    return self
}

func (self *Instruction) SetType(t *TypeRef) *Instruction {
    self.Type = t
    return self
}

func (self *Instruction) SetBranch(pc int) *Instruction {
    self.Br = pc
    return self
}

func (self *Instruction) SetSwitch(pcs ...int) *Instruction {
    self.Sw = pcs
    return self
}

// Literal returns the literal of a constant-forming instruction.
func (self *Instruction) Literal() int64 {
    return self.Lit
}

// SrcCount returns the number of source register operands.
func (self *Instruction) SrcCount() int {
    return len(self.Src)
}

// SrcAt returns the i-th source register in observed source order.
func (self *Instruction) SrcAt(i int) Reg {
    if i < 0 || i >= len(self.Src) {
        panic(fmt.Sprintf("ir: source index %d out of range for %s", i, self.Op))
    } else {
        return self.Src[i]
    }
}

func (self *Instruction) formatSrcs() string {
    nb := len(self.Src)
    buf := make([]string, 0, nb)

    /* convert every register */
    for _, r := range self.Src {
        buf = append(buf, r.String())
    }

    /* join them together */
    return strings.Join(buf, ", ")
}

// Disassemble renders the instruction in smali-like syntax.
func (self *Instruction) Disassemble() string {
    ops := make([]string, 0, 4)

    /* destination register */
    if self.Op.HasDest() {
        ops = append(ops, self.Dst.String())
    }

    /* source registers, invoke arguments are braced */
    if self.Op.IsInvoke() {
        ops = append(ops, fmt.Sprintf("{%s}", self.formatSrcs()))
    } else if len(self.Src) != 0 {
        ops = append(ops, self.formatSrcs())
    }

    /* immediates and references */
    switch {
        case self.Op >= OP_const_4 && self.Op <= OP_const_wide_high16 : ops = append(ops, fmt.Sprintf("#%d", self.Lit))
        case self.Op >= OP_add_int_lit16 && self.Op <= OP_ushr_int_lit8 : ops = append(ops, fmt.Sprintf("#%d", self.Lit))
        case self.Method != nil                                      : ops = append(ops, self.Method.String())
        case self.Type != nil                                        : ops = append(ops, self.Type.String())
        case self.Op.IsGoto() || self.Op.IsConditional()             : ops = append(ops, fmt.Sprintf(":%d", self.Br))
    }

    /* bare opcodes have no operand list */
    if len(ops) == 0 {
        return self.Op.String()
    }

    /* compose the result */
    return fmt.Sprintf(
        "%-21s %s",
        self.Op.String(),
        strings.Join(ops, ", "),
    )
}

func (self *Instruction) String() string {
    return self.Disassemble()
}
