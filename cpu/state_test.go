package cpu_test

import (
	"testing"

	"github.com/shanegibbs/risk5/cpu"
	"github.com/shanegibbs/risk5/memory"
	"github.com/shanegibbs/risk5/mmu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	c := cpu.NewCPU(mmu.New(memory.NewByteMap()))
	c.PC = 0x80001000
	c.Regs.Set(5, 0xdeadbeef)
	c.SetCSR(0x305, 0x80002000) // mtvec

	snap := c.Snapshot()

	other := cpu.NewCPU(mmu.New(memory.NewByteMap()))
	other.Restore(snap)

	require.Equal(t, snap, other.Snapshot(), "restoring a snapshot onto a fresh CPU should reproduce it exactly")
}

func TestDiffReportsOnlyChangedFields(t *testing.T) {
	before := cpu.State{PC: 0x1000}
	after := before
	after.PC = 0x1004
	after.XRegs[5] = 42

	diffs := before.Diff(after)
	assert.Len(t, diffs, 2, "pc and x5 changed, nothing else")

	byField := make(map[string]cpu.Diff, len(diffs))
	for _, d := range diffs {
		byField[d.Field] = d
	}

	require.Contains(t, byField, "pc")
	assert.Equal(t, uint64(0x1000), byField["pc"].Want)
	assert.Equal(t, uint64(0x1004), byField["pc"].Got)

	require.Contains(t, byField, "x5")
	assert.Equal(t, uint64(42), byField["x5"].Got)
}

func TestDiffIgnoresX0(t *testing.T) {
	before := cpu.State{}
	after := cpu.State{}
	after.XRegs[0] = 0xff // architecturally impossible, but Diff should still ignore it

	assert.Empty(t, before.Diff(after), "x0 is never diffed")
}
