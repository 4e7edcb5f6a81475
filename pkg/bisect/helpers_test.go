package bisect

import (
	"context"
	"os"
	"testing"

	"github.com/arthur-debert/modbisect/pkg/discovery"
	"github.com/arthur-debert/modbisect/pkg/errors"
	"github.com/arthur-debert/modbisect/pkg/folders"
	"github.com/arthur-debert/modbisect/pkg/prompt"
	"github.com/arthur-debert/modbisect/pkg/recovery"
	"github.com/arthur-debert/modbisect/pkg/testutil"
	"github.com/arthur-debert/modbisect/pkg/types"
)

type round struct {
	disabled  []types.ModFolder
	remaining []types.ModFolder
}

type recordingReporter struct {
	mods   []types.ModFolder
	rounds []round
}

func (r *recordingReporter) Mods(mods []types.ModFolder) error {
	r.mods = mods
	return nil
}

func (r *recordingReporter) Round(disabled, remaining []types.ModFolder) error {
	r.rounds = append(r.rounds, round{disabled: disabled, remaining: remaining})
	return nil
}

// recordingToggler remembers every path it was asked to rename.
type recordingToggler struct {
	*folders.Manager
	touched []string
	failOn  string
}

func (t *recordingToggler) Disable(path string) (string, error) {
	t.touched = append(t.touched, path)
	if path == t.failOn {
		return "", errRenameInjected(path)
	}
	return t.Manager.Disable(path)
}

func (t *recordingToggler) Enable(path string) (string, error) {
	t.touched = append(t.touched, path)
	if path == t.failOn {
		return "", errRenameInjected(path)
	}
	return t.Manager.Enable(path)
}

type fixture struct {
	env      *testutil.TestEnvironment
	session  *Session
	toggler  *recordingToggler
	reporter *recordingReporter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	return &fixture{
		env:      env,
		session:  NewSession(env.FS, env.StateFile),
		toggler:  &recordingToggler{Manager: folders.NewManager(env.FS)},
		reporter: &recordingReporter{},
	}
}

func (f *fixture) controller(asker prompt.Asker) *Controller {
	return NewController(f.session, discovery.NewScanner(f.env.FS, ""), f.toggler, asker, f.reporter)
}

func (f *fixture) run(t *testing.T, asker prompt.Asker) (Result, error) {
	t.Helper()
	return f.controller(asker).Run(context.Background(), f.env.Root)
}

func (f *fixture) cleanup(t *testing.T) recovery.Result {
	t.Helper()
	result, err := f.session.Cleanup(recovery.New(f.env.FS))
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	return result
}

// oracle answers as a user would if the folder at culprit caused the problem.
func oracle(env *testutil.TestEnvironment, culprit string) prompt.Asker {
	return prompt.Func(func(_ context.Context, _ string) (prompt.Answer, error) {
		if env.Exists(culprit) {
			return prompt.Yes, nil
		}
		return prompt.No, nil
	})
}

func errRenameInjected(path string) error {
	return errors.Newf(errors.ErrRenameFailed, "injected failure for %q", path)
}

func removeAll(path string) error {
	return os.RemoveAll(path)
}
