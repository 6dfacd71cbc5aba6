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

// TypeRef is a reference to a Dalvik type, identified by its descriptor
// string, e.g. "I", "J", "[I", "Ljava/lang/Object;".
type TypeRef struct {
    Desc string
}

func TypeOf(desc string) *TypeRef {
    return &TypeRef { Desc: desc }
}

// IsWide reports whether the type occupies a register pair.
func (self *TypeRef) IsWide() bool {
    return self.Desc == "J" || self.Desc == "D"
}

// IsPrimitive reports whether the type is a Dalvik primitive.
func (self *TypeRef) IsPrimitive() bool {
    if len(self.Desc) != 1 {
        return false
    } else {
        return strings.IndexByte("ZBSCIJFD", self.Desc[0]) >= 0
    }
}

// IsArray reports whether the type is an array type.
func (self *TypeRef) IsArray() bool {
    return len(self.Desc) > 1 && self.Desc[0] == '['
}

// ElementType returns the element type of an array type.
func (self *TypeRef) ElementType() *TypeRef {
    if !self.IsArray() {
        panic(fmt.Sprintf("ir: not an array type: %s", self.Desc))
    } else {
        return TypeOf(self.Desc[1:])
    }
}

func (self *TypeRef) String() string {
    return self.Desc
}

// Proto is a method's ordered argument type list and return type.
type Proto struct {
    Args []*TypeRef
    Ret  *TypeRef
}

func (self *Proto) String() string {
    nb := len(self.Args)
    buf := make([]string, 0, nb)

    /* add every argument */
    for _, vt := range self.Args {
        buf = append(buf, vt.Desc)
    }

    /* compose the descriptor */
    return fmt.Sprintf(
        "(%s)%s",
        strings.Join(buf, ""),
        self.Ret.Desc,
    )
}

// MethodRef is a reference to a method of a class, with its proto resolved.
type MethodRef struct {
    Class string
    Name  string
    Proto *Proto
}

func (self *MethodRef) String() string {
    return fmt.Sprintf("%s.%s:%s", self.Class, self.Name, self.Proto)
}

// ParseProto parses a Dalvik proto descriptor such as "(IJ[Ljava/lang/String;)V".
func ParseProto(src string) (*Proto, error) {
    if len(src) == 0 || src[0] != '(' {
        return nil, esyntax(0, src, "proto descriptor must start with '('")
    }

    /* parse the argument list */
    i := 1
    ret := new(Proto)

    /* scan until the closing parenthesis */
    for i < len(src) && src[i] != ')' {
        vt, p, err := parseType(src, i)
        if err != nil {
            return nil, err
        }
        ret.Args = append(ret.Args, vt)
        i = p
    }

    /* check for the closing parenthesis */
    if i >= len(src) {
        return nil, esyntax(i, src, "unterminated argument list")
    }

    /* parse the return type */
    vt, p, err := parseType(src, i + 1)
    if err != nil {
        return nil, err
    }

    /* the return type must be the last token */
    if p != len(src) {
        return nil, esyntax(p, src, "trailing characters after return type")
    }

    ret.Ret = vt
    return ret, nil
}

func parseType(src string, i int) (*TypeRef, int, error) {
    p := i

    /* skip the array dimensions */
    for p < len(src) && src[p] == '[' {
        p++
    }

    /* must have a type tag */
    if p >= len(src) {
        return nil, 0, esyntax(p, src, "missing type descriptor")
    }

    /* primitive and void tags are single characters, class
     * references run to the next semicolon */
    switch src[p] {
        case 'Z', 'B', 'S', 'C', 'I', 'J', 'F', 'D', 'V':
            return TypeOf(src[i:p + 1]), p + 1, nil
        case 'L':
            q := strings.IndexByte(src[p:], ';')
            if q < 0 {
                return nil, 0, esyntax(p, src, "unterminated class descriptor")
            }
            return TypeOf(src[i:p + q + 1]), p + q + 1, nil
        default:
            return nil, 0, esyntax(p, src, fmt.Sprintf("invalid type tag '%c'", src[p]))
    }
}
