package reactive

import "testing"

func TestSignal(t *testing.T) {
	tabStop := New(8)
	if tabStop.Get() != 8 {
		t.Errorf("expected 8, got %d", tabStop.Get())
	}

	tabStop.Set(4)
	if tabStop.Get() != 4 {
		t.Errorf("expected 4, got %d", tabStop.Get())
	}
}

func TestSignalSetSameValueDoesNotNotify(t *testing.T) {
	tabStop := New(8)
	runCount := 0
	NewEffect(func() {
		_ = tabStop.Get()
		runCount++
	})

	tabStop.Set(8)
	if runCount != 1 {
		t.Errorf("expected no re-run on identical value, got %d runs", runCount)
	}
}

func TestEffect(t *testing.T) {
	tabStop := New(8)
	runCount := 0

	NewEffect(func() {
		_ = tabStop.Get()
		runCount++
	})

	if runCount != 1 {
		t.Errorf("effect should run immediately, got %d", runCount)
	}

	tabStop.Set(4)
	if runCount != 2 {
		t.Errorf("effect should run on update, got %d", runCount)
	}

	tabStop.Set(2)
	if runCount != 3 {
		t.Errorf("effect should run on update, got %d", runCount)
	}
}

func TestComputed(t *testing.T) {
	tabStop := New(1)
	doubled := NewComputed(func() int {
		return tabStop.Get() * 2
	})

	if doubled.Get() != 2 {
		t.Errorf("expected 2, got %d", doubled.Get())
	}

	tabStop.Set(4)
	if doubled.Get() != 8 {
		t.Errorf("expected 8, got %d", doubled.Get())
	}
}

func TestDependencyTracking(t *testing.T) {
	tabStop := New(8)
	wide := New(false)
	sum := 0

	NewEffect(func() {
		w := 1
		if wide.Get() {
			w = 2
		}
		sum = tabStop.Get() + w
	})

	if sum != 9 {
		t.Errorf("expected 9, got %d", sum)
	}

	tabStop.Set(4)
	if sum != 5 {
		t.Errorf("expected 5, got %d", sum)
	}

	wide.Set(true)
	if sum != 6 {
		t.Errorf("expected 6, got %d", sum)
	}
}

func TestEffectDispose(t *testing.T) {
	tabStop := New(8)
	runCount := 0

	eff := NewEffect(func() {
		_ = tabStop.Get()
		runCount++
	})
	eff.Dispose()

	tabStop.Set(4)
	if runCount != 1 {
		t.Errorf("disposed effect should not re-run, got %d", runCount)
	}
}

func TestBatchCoalescesNotifications(t *testing.T) {
	a := New(1)
	b := New(2)
	runCount := 0

	NewEffect(func() {
		_ = a.Get() + b.Get()
		runCount++
	})

	Batch(func() {
		a.Set(10)
		b.Set(20)
	})

	if runCount != 2 {
		t.Errorf("expected exactly one extra run inside the batch, got %d total runs", runCount)
	}
}
