package org

import (
	"errors"
	"reflect"
	"testing"
)

func sampleRecords() []Record {
	return []Record{
		{ID: "ceo", Name: "Eva", Title: "CEO"},
		{ID: "cto", ParentID: "ceo", Name: "Tom", Title: "CTO"},
		{ID: "cfo", ParentID: "ceo", Name: "Fien", Title: "CFO"},
		{ID: "dev1", ParentID: "cto", Name: "Daan"},
		{ID: "dev2", ParentID: "cto", Name: "Lotte"},
	}
}

func TestBuild(t *testing.T) {
	root, err := Build(sampleRecords())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if root.ID != "ceo" {
		t.Errorf("root = %s, want ceo", root.ID)
	}
	if root.Count() != 5 {
		t.Errorf("Count = %d, want 5", root.Count())
	}
	if root.Depth() != 3 {
		t.Errorf("Depth = %d, want 3", root.Depth())
	}
	if len(root.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(root.Children))
	}
	// Child order follows record order.
	if root.Children[0].ID != "cto" || root.Children[1].ID != "cfo" {
		t.Errorf("child order = %s, %s, want cto, cfo", root.Children[0].ID, root.Children[1].ID)
	}

	if n := root.Find("dev2"); n == nil || n.Name != "Lotte" {
		t.Error("Find(dev2) should return the node")
	}
	if root.Find("missing") != nil {
		t.Error("Find(missing) should return nil")
	}
	if !root.Find("dev1").IsLeaf() {
		t.Error("dev1 should be a leaf")
	}
	if root.IsLeaf() {
		t.Error("root should not be a leaf")
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name    string
		records []Record
		want    error
	}{
		{"empty set", nil, ErrNoRoot},
		{"empty id", []Record{{ID: ""}}, ErrEmptyID},
		{"duplicate id", []Record{{ID: "a"}, {ID: "a", ParentID: "a"}}, ErrDuplicateID},
		{"unknown parent", []Record{{ID: "a"}, {ID: "b", ParentID: "ghost"}}, ErrUnknownParent},
		{"no root", []Record{{ID: "a", ParentID: "b"}, {ID: "b", ParentID: "a"}}, ErrNoRoot},
		{"multiple roots", []Record{{ID: "a"}, {ID: "b"}}, ErrMultipleRoots},
		{"self parent", []Record{{ID: "r"}, {ID: "a", ParentID: "a"}}, ErrCycle},
		{"two-node cycle", []Record{
			{ID: "r"},
			{ID: "a", ParentID: "b"},
			{ID: "b", ParentID: "a"},
		}, ErrCycle},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(tc.records)
			if !errors.Is(err, tc.want) {
				t.Errorf("Build error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	records := sampleRecords()
	root, err := Build(records)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	got := Flatten(root)
	if !reflect.DeepEqual(got, records) {
		t.Errorf("Flatten = %+v, want %+v", got, records)
	}

	// And back again.
	again, err := Build(got)
	if err != nil {
		t.Fatalf("rebuild error: %v", err)
	}
	if !reflect.DeepEqual(again, root) {
		t.Error("Build(Flatten(root)) should reproduce the tree")
	}
}

func TestWalkPreOrder(t *testing.T) {
	root, _ := Build(sampleRecords())

	var order []string
	root.Walk(func(n *Node) { order = append(order, n.ID) })

	want := []string{"ceo", "cto", "dev1", "dev2", "cfo"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("Walk order = %v, want %v", order, want)
	}
}

func TestValidate(t *testing.T) {
	root, _ := Build(sampleRecords())
	if err := Validate(root); err != nil {
		t.Errorf("Validate on Build output: %v", err)
	}

	if err := Validate(nil); !errors.Is(err, ErrNoRoot) {
		t.Errorf("Validate(nil) = %v, want ErrNoRoot", err)
	}

	dup := &Node{ID: "a", Children: []*Node{{ID: "a"}}}
	if err := Validate(dup); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Validate duplicate = %v, want ErrDuplicateID", err)
	}

	empty := &Node{ID: "a", Children: []*Node{{ID: ""}}}
	if err := Validate(empty); !errors.Is(err, ErrEmptyID) {
		t.Errorf("Validate empty id = %v, want ErrEmptyID", err)
	}
}

func TestDepthSingleLeaf(t *testing.T) {
	if d := (&Node{ID: "x"}).Depth(); d != 1 {
		t.Errorf("leaf Depth = %d, want 1", d)
	}
}
