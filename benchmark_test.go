package grove

import "testing"

var benchSink int

// setupBenchState creates a State with n entities laid out in a grid of
// rows of 100, each row grouped under its own container.
func setupBenchState(n int) (*State, []Entity) {
	st := NewState()
	st.Props(Root).Bounds = Rect{Width: 4000, Height: 4000}
	noop := HandlerFunc(func(*State, Entity, *Event) {})
	var leaves []Entity
	row := Root
	for i := 0; i < n; i++ {
		if i%100 == 0 {
			row, _ = st.Add(Root, nil)
		}
		e, _ := st.Add(row, noop)
		st.Props(e).Bounds = Rect{
			X:      float64(i%100) * 40,
			Y:      float64(i/100) * 40,
			Width:  32,
			Height: 32,
		}
		leaves = append(leaves, e)
	}
	return st, leaves
}

// --- Tree Benchmarks ---

func BenchmarkTreeIter_10000(b *testing.B) {
	st, _ := setupBenchState(10000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		n := 0
		it := st.Tree.Iter()
		for _, ok := it.Next(); ok; _, ok = it.Next() {
			n++
		}
		benchSink = n
	}
}

func BenchmarkTreeClone_10000(b *testing.B) {
	st, _ := setupBenchState(10000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = st.Tree.Clone()
	}
}

func BenchmarkTreeAddRemove(b *testing.B) {
	tr := NewTree()
	var alloc EntityAllocator
	parent := alloc.Create()
	_ = tr.Add(parent, Root)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e := alloc.Create()
		_ = tr.Add(e, parent)
		_, _ = tr.Delete(e)
	}
}

// --- Dispatch Benchmarks ---

func BenchmarkFlush_BubbleUp_1000Events(b *testing.B) {
	st, leaves := setupBenchState(10000)
	mgr := NewEventManager()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for j := 0; j < 1000; j++ {
			st.InsertEvent(NewEvent(j).WithTarget(leaves[j*10]).Propagate(Direct | Up))
		}
		mgr.Flush(st)
	}
}

func BenchmarkFlush_Broadcast_10000(b *testing.B) {
	st, _ := setupBenchState(10000)
	mgr := NewEventManager()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		st.InsertEvent(NewEvent(WindowRedraw))
		mgr.Flush(st)
	}
}

// --- Hover Benchmarks ---

func BenchmarkResolveHover_10000(b *testing.B) {
	st, _ := setupBenchState(10000)
	st.ResolveHover() // warmup: grows buffers

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		st.SetPointer(float64(i%4000), float64((i*7)%4000))
		st.ResolveHover()
		clear(st.events)
		st.events = st.events[:0]
	}
}
