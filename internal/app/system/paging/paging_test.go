package paging

import "testing"

func TestTrimPage_Forward(t *testing.T) {
	rows := make([]int, PageSize+1)
	res := TrimPage(&rows, "", "")
	if len(rows) != PageSize {
		t.Errorf("len = %d, want %d", len(rows), PageSize)
	}
	if !res.HasNext || res.HasPrev {
		t.Errorf("res = %+v, want next only", res)
	}
}

func TestTrimPage_ForwardWithCursor(t *testing.T) {
	rows := make([]int, 10)
	res := TrimPage(&rows, "", "somecursor")
	if len(rows) != 10 {
		t.Errorf("len = %d, want 10", len(rows))
	}
	if res.HasNext || !res.HasPrev {
		t.Errorf("res = %+v, want prev only", res)
	}
}

func TestTrimPage_Backward(t *testing.T) {
	rows := make([]int, PageSize+1)
	res := TrimPage(&rows, "somecursor", "")
	if len(rows) != PageSize {
		t.Errorf("len = %d, want %d", len(rows), PageSize)
	}
	if !res.HasNext || !res.HasPrev {
		t.Errorf("res = %+v, want both", res)
	}
}

func TestComputeRange(t *testing.T) {
	r := ComputeRange(1, 25)
	if r.Start != 1 || r.End != 25 {
		t.Errorf("range = %+v", r)
	}
	if r.NextStart != 26 || r.PrevStart != 1 {
		t.Errorf("range = %+v", r)
	}

	empty := ComputeRange(51, 0)
	if empty.Start != 0 || empty.End != 0 {
		t.Errorf("empty range = %+v", empty)
	}

	second := ComputeRange(51, PageSize)
	if second.PrevStart != 1 || second.NextStart != 101 {
		t.Errorf("second page range = %+v", second)
	}
}

func TestConfigureKeyset_Direction(t *testing.T) {
	fwd := ConfigureKeyset("", "")
	if fwd.Direction != Forward || fwd.SortOrder != 1 || fwd.Cursor != nil {
		t.Errorf("forward cfg = %+v", fwd)
	}

	back := ConfigureKeyset("not-a-valid-cursor", "")
	if back.Direction != Backward || back.SortOrder != -1 {
		t.Errorf("backward cfg = %+v", back)
	}
}

func TestReverse(t *testing.T) {
	rows := []int{1, 2, 3}
	Reverse(rows)
	if rows[0] != 3 || rows[2] != 1 {
		t.Errorf("rows = %v", rows)
	}
}
