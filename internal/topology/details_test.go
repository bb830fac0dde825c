package topology

import "testing"

func sampleDetails() *Details {
	components := []Component{
		{ID: "spout", Type: Source, Execs: []ExecutorID{"spout-1"}, Children: []string{"bolt-a"}},
		{ID: "bolt-a", Type: Processor, Execs: []ExecutorID{"bolt-a-1", "bolt-a-2"}, Parents: []string{"spout"}},
	}
	d := New("wordcount", 768, components)
	d.AddExecutor(Executor{ID: "spout-1", CPUReq: 1, MemReq: 128})
	d.AddExecutor(Executor{ID: "bolt-a-1", CPUReq: 1, MemReq: 256})
	d.AddExecutor(Executor{ID: "bolt-a-2", CPUReq: 1, MemReq: 256})
	return d
}

func TestDetails_SourceComponents(t *testing.T) {
	d := sampleDetails()
	sources := d.SourceComponents()
	if len(sources) != 1 || sources[0].ID != "spout" {
		t.Fatalf("expected [spout], got %v", sources)
	}
}

func TestDetails_ComponentOf(t *testing.T) {
	d := sampleDetails()

	id, ok := d.ComponentOf("bolt-a-1")
	if !ok || id != "bolt-a" {
		t.Errorf("ComponentOf(bolt-a-1) = %q, %v; want bolt-a, true", id, ok)
	}

	if _, ok := d.ComponentOf("system-task-1"); ok {
		t.Error("expected system-task-1 to have no owning component")
	}
}

func TestDetails_TotalCPUReqTask_UnknownExecutor(t *testing.T) {
	d := sampleDetails()
	if _, err := d.TotalCPUReqTask("ghost"); err == nil {
		t.Fatal("expected error for unknown executor")
	} else if _, ok := err.(ErrUnknownExecutor); !ok {
		t.Errorf("expected ErrUnknownExecutor, got %T", err)
	}
}

func TestDetails_TotalMemReqTask(t *testing.T) {
	d := sampleDetails()
	mem, err := d.TotalMemReqTask("bolt-a-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mem != 256 {
		t.Errorf("got %v, want 256", mem)
	}
}

func TestDetails_ComponentsPreserveDeclarationOrder(t *testing.T) {
	d := sampleDetails()
	got := d.Components()
	if len(got) != 2 || got[0].ID != "spout" || got[1].ID != "bolt-a" {
		t.Fatalf("declaration order not preserved: %v", got)
	}
}

func TestComponent_Neighbors(t *testing.T) {
	c := Component{ID: "bolt-b", Parents: []string{"bolt-a"}, Children: []string{"sink"}}
	got := c.Neighbors()
	want := []string{"bolt-a", "sink"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Neighbors() = %v, want %v", got, want)
	}
}

func TestComponentType_String(t *testing.T) {
	if Source.String() != "SOURCE" {
		t.Errorf("Source.String() = %q, want SOURCE", Source.String())
	}
	if Processor.String() != "PROCESSOR" {
		t.Errorf("Processor.String() = %q, want PROCESSOR", Processor.String())
	}
}
