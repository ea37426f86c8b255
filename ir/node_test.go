package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testTree() *Node {
	root := NewBlock("events/test.txt")
	ev := NewBlock("my_mod.1")
	root.Append(ev)
	ev.Append(NewProperty("type", "=", "character_event"))
	ev.Append(NewProperty("option", "=", "a"))
	ev.Append(NewProperty("option", "=", "b"))
	return root
}

func TestGetAndGetAll(t *testing.T) {
	ev := testTree().Get("my_mod.1")
	if ev == nil {
		t.Fatal("Get(my_mod.1) = nil")
	}
	if got := ev.Get("type").Value; got != "character_event" {
		t.Errorf("Get(type).Value = %q", got)
	}
	if ev.Get("missing") != nil {
		t.Error("Get(missing) should be nil")
	}
	opts := ev.GetAll("option")
	if len(opts) != 2 || opts[0].Value != "a" || opts[1].Value != "b" {
		t.Errorf("GetAll(option) = %v", opts)
	}
}

func TestChildMap(t *testing.T) {
	ev := testTree().Get("my_mod.1")
	got := map[string]int{}
	for k, v := range ev.ChildMap() {
		got[k] = len(v)
	}
	want := map[string]int{"type": 1, "option": 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ChildMap (-want +got):\n%s", diff)
	}
}

func TestParentLinks(t *testing.T) {
	root := testTree()
	ev := root.Get("my_mod.1")
	for i, c := range ev.Children {
		if c.Parent != ev {
			t.Errorf("child %d parent mismatch", i)
		}
		if c.ParentIndex != i {
			t.Errorf("child %d index %d", i, c.ParentIndex)
		}
		if c.Root() != root {
			t.Errorf("child %d root mismatch", i)
		}
	}
}

func TestVisitOrderAndSkip(t *testing.T) {
	root := testTree()
	var pre, post []string
	err := root.Visit(func(y *Node, isPost bool) (bool, error) {
		if isPost {
			post = append(post, y.Key)
			return true, nil
		}
		pre = append(pre, y.Key)
		// do not descend into the event block
		return y.Key != "my_mod.1", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	wantPre := []string{"events/test.txt", "my_mod.1"}
	if diff := cmp.Diff(wantPre, pre); diff != "" {
		t.Errorf("pre order (-want +got):\n%s", diff)
	}
	wantPost := []string{"my_mod.1", "events/test.txt"}
	if diff := cmp.Diff(wantPost, post); diff != "" {
		t.Errorf("post order (-want +got):\n%s", diff)
	}
}
