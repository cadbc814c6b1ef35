package vlist

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vanderheijden86/listview/pkg/model"
)

// fakeSurface implements Surface for tests and counts every
// allocation and destruction so leak checks are exact.
type fakeSurface struct {
	creates    int
	destroys   int
	failCreate bool
	failIDs    map[int]bool // Update fails for items with these ids
	nodes      []*fakeNode
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{failIDs: make(map[int]bool)}
}

func (s *fakeSurface) Create() (Node, error) {
	if s.failCreate {
		return nil, errors.New("create refused")
	}
	s.creates++
	n := &fakeNode{surface: s}
	s.nodes = append(s.nodes, n)
	return n, nil
}

func (s *fakeSurface) Destroy(Node) { s.destroys++ }

func (s *fakeSurface) totalResets() int {
	sum := 0
	for _, n := range s.nodes {
		sum += n.resets
	}
	return sum
}

// fakeNode records what was drawn on it.
type fakeNode struct {
	surface *fakeSurface
	fields  Fields
	drawn   bool
	updates int
	resets  int
}

func (n *fakeNode) Update(f Fields) error {
	n.updates++
	if n.surface.failIDs[f.ID] {
		return errors.New("malformed item")
	}
	n.fields = f
	n.drawn = true
	return nil
}

func (n *fakeNode) Reset() {
	n.resets++
	n.fields = Fields{}
	n.drawn = false
}

// genItems builds n valid items with ids 0..n-1 in id order.
func genItems(n int) []model.Item {
	items := make([]model.Item, n)
	cats := model.Categories()
	for i := range items {
		items[i] = model.Item{
			ID:       i,
			Name:     "item-" + strconv.Itoa(i),
			Category: cats[i%len(cats)],
			Value:    (i * 37) % 1000,
			Date:     fmt.Sprintf("2026-%02d-%02d", i%12+1, i%28+1),
		}
	}
	return items
}
