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

    `gonum.org/v1/gonum/graph`
    `gonum.org/v1/gonum/graph/simple`
    `gonum.org/v1/gonum/graph/traverse`
)

/*
 *             UNKNOWN
 *              /    \
 *            ZERO   WIDE
 *           /    \     |
 *       OBJECT NORMAL  |
 *          \     |    /
 *           \    |   /
 *            CONFLICT
 */
var latticeElements = []RegisterType {
    Conflict,
    Zero,
    Normal,
    Wide,
    Object,
    Unknown,
}

/* covering relation, child first */
var latticeEdges = [][2]RegisterType {
    { Conflict, Object  },
    { Conflict, Normal  },
    { Conflict, Wide    },
    { Object  , Zero    },
    { Normal  , Zero    },
    { Zero    , Unknown },
    { Wide    , Unknown },
}

// Lattice is the finite join-semilattice of register kinds. The join table is
// precomputed from the covering relation when the package is initialized and
// never written afterwards, so any number of allocator threads may share it.
type Lattice struct {
    tab [Size][Size]RegisterType
}

var lattice = newLattice(latticeElements, latticeEdges)

func newLattice(elems []RegisterType, edges [][2]RegisterType) (self *Lattice) {
    g := simple.NewDirectedGraph()
    cls := make(map[RegisterType]uint8, len(elems))

    /* add every element */
    for _, v := range elems {
        g.AddNode(simple.Node(int64(v)))
    }

    /* joining two kinds refines them, so walks go from parent to child */
    for _, e := range edges {
        g.SetEdge(g.NewEdge(simple.Node(int64(e[1])), simple.Node(int64(e[0]))))
    }

    /* collect the refinement closure of every element, including itself */
    for _, v := range elems {
        rt := v
        bfs := traverse.BreadthFirst{}
        bfs.Walk(g, g.Node(int64(v)), func(n graph.Node, _ int) bool {
            cls[rt] |= 1 << uint8(n.ID())
            return false
        })
    }

    /* tabulate the join of every pair */
    self = new(Lattice)
    for _, a := range elems {
        for _, b := range elems {
            self.tab[a][b] = lub(cls, cls[a] & cls[b])
        }
    }
    return
}

// lub finds the least refinement that both inputs admit: the unique element
// of the common closure whose own closure equals it.
func lub(cls map[RegisterType]uint8, common uint8) RegisterType {
    for v, cl := range cls {
        if cl == common {
            return v
        }
    }
    panic(fmt.Sprintf("regalloc: no unique bound for closure 0x%02x", common))
}

// Join returns the least upper bound of a and b. Joining with the Size
// sentinel is a programmer error.
func (self *Lattice) Join(a RegisterType, b RegisterType) RegisterType {
    if a >= Size || b >= Size {
        panic(fmt.Sprintf("regalloc: join of non-value register types: 0x%02x, 0x%02x", uint8(a), uint8(b)))
    } else {
        return self.tab[a][b]
    }
}

// Join merges two register kinds meeting at a control-flow join point.
func Join(a RegisterType, b RegisterType) RegisterType {
    return lattice.Join(a, b)
}
