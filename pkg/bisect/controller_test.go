package bisect

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/bits"
	"math/rand"
	"testing"

	"github.com/arthur-debert/modbisect/pkg/errors"
	"github.com/arthur-debert/modbisect/pkg/folders"
	"github.com/arthur-debert/modbisect/pkg/prompt"
	"github.com/arthur-debert/modbisect/pkg/state"
	"github.com/arthur-debert/modbisect/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioFourMods(t *testing.T) {
	f := newFixture(t)
	f.env.Mods("A", "B", "C", "D")
	store := state.NewStore(f.env.FS)

	type snapshot struct {
		names  []string
		record []string
	}
	var snapshots []snapshot
	asker := prompt.NewScripted(prompt.No, prompt.Yes)
	asker.OnAsk = func(_ int, _ string) {
		record, err := store.Load(f.env.StateFile)
		require.NoError(t, err)
		snapshots = append(snapshots, snapshot{names: f.env.Names(""), record: record})
	}

	result, err := f.run(t, asker)
	require.NoError(t, err)

	// round 1: only A and B enabled
	require.Len(t, snapshots, 2)
	assert.Equal(t, []string{"A", "B", "DISABLED C", "DISABLED D"}, snapshots[0].names)
	assert.ElementsMatch(t, []string{f.env.Path("DISABLED C"), f.env.Path("DISABLED D")}, snapshots[0].record)

	// round 2: after "no", C and D were the group; now only C is enabled
	assert.Equal(t, []string{"C", "DISABLED A", "DISABLED B", "DISABLED D"}, snapshots[1].names)
	assert.ElementsMatch(t, []string{
		f.env.Path("DISABLED A"), f.env.Path("DISABLED B"), f.env.Path("DISABLED D"),
	}, snapshots[1].record)

	assert.Equal(t, OutcomeResolved, result.Outcome)
	assert.Equal(t, f.env.Path("C"), result.CulpritPath)
	assert.Equal(t, "C", result.Culprit.Name)
	assert.Equal(t, 2, result.Rounds)

	restored := f.cleanup(t)
	assert.Equal(t, 3, restored.Restored)
	assert.Equal(t, []string{"A", "B", "C", "D"}, f.env.Names(""))
	f.env.AssertNotExists(f.env.StateFile)
	assert.Empty(t, f.session.Record())
}

func TestScenarioReportsRounds(t *testing.T) {
	f := newFixture(t)
	f.env.Mods("A", "B", "C", "D")

	_, err := f.run(t, prompt.NewScripted(prompt.No, prompt.Yes))
	require.NoError(t, err)
	f.cleanup(t)

	assert.Equal(t, []string{"A", "B", "C", "D"}, names(f.reporter.mods))
	require.Len(t, f.reporter.rounds, 2)
	assert.Equal(t, []string{"C", "D"}, names(f.reporter.rounds[0].disabled))
	assert.Equal(t, []string{"A", "B"}, names(f.reporter.rounds[0].remaining))
	assert.Equal(t, []string{"A", "B", "D"}, names(f.reporter.rounds[1].disabled))
	assert.Equal(t, []string{"C"}, names(f.reporter.rounds[1].remaining))
	// paths are reported in their original (enabled) form
	assert.Equal(t, f.env.Path("D"), f.reporter.rounds[1].disabled[2].Path)
}

func TestRoundCount(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 1; n <= 17; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			ceil, floor := bits.Len(uint(n-1)), bits.Len(uint(n))-1

			// the last folder always lands in the larger half
			f := newFixture(t)
			var paths []string
			for i := 0; i < n; i++ {
				paths = append(paths, f.env.Mod(fmt.Sprintf("m%02d", i)))
			}
			result, err := f.run(t, oracle(f.env, paths[n-1]))
			require.NoError(t, err)
			f.cleanup(t)
			assert.Equal(t, ceil, result.Rounds)
			assert.Equal(t, paths[n-1], result.Culprit.Path)

			f = newFixture(t)
			paths = paths[:0]
			for i := 0; i < n; i++ {
				paths = append(paths, f.env.Mod(fmt.Sprintf("m%02d", i)))
			}
			culprit := paths[rng.Intn(n)]
			result, err = f.run(t, oracle(f.env, culprit))
			require.NoError(t, err)
			f.cleanup(t)
			assert.LessOrEqual(t, result.Rounds, ceil)
			assert.GreaterOrEqual(t, result.Rounds, floor)
			assert.Equal(t, culprit, result.Culprit.Path)
			assert.Equal(t, OutcomeResolved, result.Outcome)
		})
	}
}

func TestExcludedFoldersNeverTouched(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 25; iter++ {
		t.Run(fmt.Sprintf("iter=%d", iter), func(t *testing.T) {
			f := newFixture(t)
			total := 2 + rng.Intn(10)
			var candidates, excluded []string
			for i := 0; i < total; i++ {
				name := fmt.Sprintf("m%02d", i)
				if rng.Intn(3) == 0 {
					excluded = append(excluded, f.env.Mod(folders.DisabledPrefix+name))
				} else {
					candidates = append(candidates, f.env.Mod(name))
				}
			}
			before := f.env.Names("")

			var asker prompt.Asker = prompt.NewScripted()
			if len(candidates) > 0 {
				asker = oracle(f.env, candidates[rng.Intn(len(candidates))])
			}
			result, err := f.run(t, asker)
			require.NoError(t, err)
			assert.Len(t, result.Excluded, len(excluded))

			for _, p := range f.toggler.touched {
				assert.NotContains(t, excluded, p)
				assert.NotContains(t, excluded, folders.DisabledPath(p))
				assert.NotContains(t, excluded, folders.EnabledPath(p))
			}
			for _, p := range excluded {
				f.env.AssertExists(p)
			}

			f.cleanup(t)
			assert.Equal(t, before, f.env.Names(""))
		})
	}
}

func TestNoMods(t *testing.T) {
	f := newFixture(t)
	f.env.Dir("empty/dir")

	result, err := f.run(t, prompt.NewScripted())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoMods, result.Outcome)
	assert.Nil(t, f.reporter.mods)
	f.env.AssertNotExists(f.env.StateFile)
}

func TestNoCandidates(t *testing.T) {
	f := newFixture(t)
	f.env.Mods("DISABLED A", "DISABLED B")

	c := f.controller(prompt.NewScripted())
	result, err := c.Run(context.Background(), f.env.Root)
	require.NoError(t, err)

	assert.Equal(t, OutcomeNoCandidates, result.Outcome)
	assert.Equal(t, PhaseNoCandidates, c.Phase())
	assert.Len(t, f.reporter.mods, 2)
	assert.Empty(t, f.toggler.touched)
}

func TestSingleCandidateNeedsNoQuestion(t *testing.T) {
	f := newFixture(t)
	f.env.Mods("Only", "DISABLED Other")
	asker := prompt.NewScripted()

	result, err := f.run(t, asker)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Rounds)
	assert.Empty(t, asker.Questions())
	assert.Equal(t, f.env.Path("Only"), result.CulpritPath)
	assert.Empty(t, f.toggler.touched)
}

func TestCulpritIsLeftEnabled(t *testing.T) {
	tests := []struct {
		name    string
		answers []prompt.Answer
		want    string
	}{
		{"first half", []prompt.Answer{prompt.Yes}, "A"},
		{"second half twice", []prompt.Answer{prompt.No, prompt.No}, "C"},
		{"second then first", []prompt.Answer{prompt.No, prompt.Yes}, "B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.env.Mods("A", "B", "C")

			result, err := f.run(t, prompt.NewScripted(tt.answers...))
			require.NoError(t, err)
			assert.Equal(t, f.env.Path(tt.want), result.CulpritPath)
			f.env.AssertExists(f.env.Path(tt.want))

			f.cleanup(t)
			assert.Equal(t, []string{"A", "B", "C"}, f.env.Names(""))
		})
	}
}

func TestCulpritUnconfirmed(t *testing.T) {
	f := newFixture(t)
	f.env.Mods("A", "B")

	asker := prompt.NewScripted(prompt.Yes)
	asker.OnAsk = func(_ int, _ string) {
		// the user deletes A while the question is pending
		require.NoError(t, removeAll(f.env.Path("A")))
	}

	result, err := f.run(t, asker)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnconfirmed, result.Outcome)
	assert.Equal(t, f.env.Path("A"), result.CulpritPath)

	f.cleanup(t)
	assert.Equal(t, []string{"B"}, f.env.Names(""))
}

func TestAbortLeavesCleanupPossible(t *testing.T) {
	f := newFixture(t)
	f.env.Mods("A", "B", "C", "D")

	_, err := f.run(t, prompt.NewScripted(prompt.No, prompt.Abort))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAborted))
	assert.NotEmpty(t, f.session.Record())

	f.cleanup(t)
	assert.Equal(t, []string{"A", "B", "C", "D"}, f.env.Names(""))
	f.env.AssertNotExists(f.env.StateFile)
}

func TestInterruptedPrompt(t *testing.T) {
	f := newFixture(t)
	f.env.Mods("A", "B", "C")

	ctx, cancel := context.WithCancel(context.Background())
	asker := prompt.Func(func(ctx context.Context, _ string) (prompt.Answer, error) {
		cancel()
		<-ctx.Done()
		return prompt.Unknown, errors.Wrap(ctx.Err(), errors.ErrInterrupted, "prompt interrupted")
	})

	_, err := f.controller(asker).Run(ctx, f.env.Root)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, context.Canceled))

	f.cleanup(t)
	assert.Equal(t, []string{"A", "B", "C"}, f.env.Names(""))
}

func TestCancelledBeforeFirstRound(t *testing.T) {
	f := newFixture(t)
	f.env.Mods("A", "B")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.controller(prompt.NewScripted(prompt.Yes)).Run(ctx, f.env.Root)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInterrupted))
	assert.Empty(t, f.toggler.touched)
}

func TestRenameFailureStopsAndRecovers(t *testing.T) {
	f := newFixture(t)
	f.env.Mods("A", "B", "C", "D")
	f.toggler.failOn = f.env.Path("D")

	_, err := f.run(t, prompt.NewScripted(prompt.Yes, prompt.Yes))
	require.Error(t, err)
	assert.True(t, folders.IsRenameFailure(err))

	// C was disabled before D failed
	assert.Equal(t, []string{f.env.Path("DISABLED C")}, f.session.Record())

	f.cleanup(t)
	assert.Equal(t, []string{"A", "B", "C", "D"}, f.env.Names(""))
}

func TestRecordedFolderDisappears(t *testing.T) {
	f := newFixture(t)
	f.env.Mods("A", "B", "C", "D")

	asker := prompt.NewScripted(prompt.No, prompt.Yes)
	asker.OnAsk = func(round int, _ string) {
		if round == 0 {
			// DISABLED C vanishes before the engine tries to enable it
			require.NoError(t, removeAll(f.env.Path("DISABLED C")))
		}
	}

	result, err := f.run(t, asker)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnconfirmed, result.Outcome)
	assert.NotContains(t, f.session.Record(), f.env.Path("DISABLED C"))

	f.cleanup(t)
	assert.Equal(t, []string{"A", "B", "D"}, f.env.Names(""))
}

func TestPhaseAndOutcomeStrings(t *testing.T) {
	assert.Equal(t, "init", PhaseInit.String())
	assert.Equal(t, "narrowing", PhaseNarrowing.String())
	assert.Equal(t, "resolved", PhaseResolved.String())
	assert.Equal(t, "no_candidates", PhaseNoCandidates.String())
	assert.Equal(t, "no_mods", OutcomeNoMods.String())
	assert.Equal(t, "unconfirmed", OutcomeUnconfirmed.String())
}

func names(mods []types.ModFolder) []string {
	out := make([]string, 0, len(mods))
	for _, m := range mods {
		out = append(out, m.Name)
	}
	return out
}
