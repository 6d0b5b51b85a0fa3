package debug

import "testing"

func TestCheckMatchesAddressAndCondition(t *testing.T) {
	m := NewManager()
	bp := m.Add(0xc000)
	cond, err := ParseCondition("X == 10")
	if err != nil {
		t.Fatalf("ParseCondition: %v", err)
	}
	bp.Condition = cond

	if _, hit := m.Check(CPUState{PC: 0xc000, X: 5}); hit {
		t.Errorf("expected no hit when condition fails")
	}
	idx, hit := m.Check(CPUState{PC: 0xc000, X: 10})
	if !hit || idx != bp.Index {
		t.Errorf("Check() = (%d, %v), want (%d, true)", idx, hit, bp.Index)
	}
}

func TestIgnoreCountDelaysHit(t *testing.T) {
	m := NewManager()
	bp := m.Add(0x1000)
	bp.Ignore = 2
	for i := 0; i < 2; i++ {
		if _, hit := m.Check(CPUState{PC: 0x1000}); hit {
			t.Fatalf("expected ignore-count to suppress hit %d", i)
		}
	}
	if _, hit := m.Check(CPUState{PC: 0x1000}); !hit {
		t.Errorf("expected a hit once the ignore count reached 0")
	}
}

func TestRunUntilAutoDeletes(t *testing.T) {
	m := NewManager()
	m.RunUntil(0x2000)
	if _, hit := m.Check(CPUState{PC: 0x2000}); !hit {
		t.Fatalf("expected the run-until breakpoint to hit")
	}
	if len(m.List()) != 0 {
		t.Errorf("expected autodelete breakpoint removed after hit, got %d remaining", len(m.List()))
	}
}

func TestParseConditionRegisterComparison(t *testing.T) {
	c, err := ParseCondition("A != Y")
	if err != nil {
		t.Fatalf("ParseCondition: %v", err)
	}
	if c.Eval(CPUState{A: 1, Y: 2}) != true {
		t.Errorf("expected A != Y true for A=1 Y=2")
	}
	if c.Eval(CPUState{A: 3, Y: 3}) != false {
		t.Errorf("expected A != Y false for A=3 Y=3")
	}
}

func TestParseConditionHexConstant(t *testing.T) {
	c, err := ParseCondition("PC>=$C000")
	if err != nil {
		t.Fatalf("ParseCondition: %v", err)
	}
	if !c.Eval(CPUState{PC: 0xc000}) {
		t.Errorf("expected PC >= $C000 true at PC=$C000")
	}
	if c.Eval(CPUState{PC: 0xbfff}) {
		t.Errorf("expected PC >= $C000 false at PC=$BFFF")
	}
}
