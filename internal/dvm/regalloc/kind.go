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
)

// RegisterType classifies the value held in a virtual register, coarser than
// the Dalvik type system: the allocator only needs to know which move variant
// transfers the value and whether it occupies a register pair.
type RegisterType uint8

const (
    // Normal is a non-wide primitive value.
    Normal RegisterType = iota

    // Object is a reference.
    Object

    // Wide is a 64-bit value occupying a register pair.
    Wide

    // Zero is the literal integer zero, usable as either null or a number.
    Zero

    // Unknown is the top of the lattice, carrying no information yet.
    Unknown

    // Conflict is the bottom of the lattice: incompatible kinds have met at
    // a join, and the register must be split.
    Conflict

    // Size is a count sentinel for kind-indexed tables, never a value.
    Size
)

func (self RegisterType) String() string {
    switch self {
        case Normal   : return "NORMAL"
        case Object   : return "OBJECT"
        case Wide     : return "WIDE"
        case Zero     : return "ZERO"
        case Unknown  : return "UNKNOWN"
        case Conflict : return "CONFLICT"
        default       : panic(fmt.Sprintf("invalid RegisterType: 0x%02x", uint8(self)))
    }
}
