package reconcile

import (
	"context"
	"log/slog"

	"github.com/Hactar-js/hactar-babel/internal/babelrc"
	"github.com/Hactar-js/hactar-babel/internal/capability"
	"github.com/Hactar-js/hactar-babel/internal/errors"
	"github.com/Hactar-js/hactar-babel/internal/logging"
	"github.com/Hactar-js/hactar-babel/internal/syntax"
)

// Installer checks for and installs packages.
type Installer interface {
	IsInstalled(pkg string) bool
	Install(ctx context.Context, pkg string) error
}

// Store loads and saves the Babel configuration document.
type Store interface {
	Load() (*babelrc.Document, error)
	Save(doc *babelrc.Document) error
}

// Reconciler runs reconciliation passes. It holds no per-pass state and may
// be reused, but passes must not run concurrently against the same store.
type Reconciler struct {
	registry  *capability.Registry
	installer Installer
	store     Store
}

// New returns a Reconciler over the given registry, installer and store.
func New(registry *capability.Registry, installer Installer, store Store) *Reconciler {
	return &Reconciler{
		registry:  registry,
		installer: installer,
		store:     store,
	}
}

// Reconcile runs one pass for tree.
//
// The returned error is non-nil only when the configuration could not be
// loaded; it is marked errors.ErrConfigParse and the remaining capabilities
// are skipped. The Result is returned in every case and records what
// happened up to that point.
func (r *Reconciler) Reconcile(ctx context.Context, tree *syntax.Tree) (*Result, error) {
	logger := logging.FromContext(ctx).With("file", tree.Path)
	result := &Result{Path: tree.Path}
	detected := make(map[string]bool, r.registry.Len())

	for _, c := range r.registry.All() {
		out := Outcome{Capability: c.Name}

		if c.Requires != "" && !detected[c.Requires] {
			out.Gated = true
			result.Outcomes = append(result.Outcomes, out)
			continue
		}

		if !c.Detect(tree) {
			logger.Debug("capability not detected", "capability", c.Name)
			result.Outcomes = append(result.Outcomes, out)
			continue
		}
		detected[c.Name] = true
		out.Detected = true
		logger.Info("detected syntax", "capability", c.Name)

		out.Installed = r.install(ctx, logger, c)

		if err := r.configure(logger, c, &out); err != nil {
			result.Outcomes = append(result.Outcomes, out)
			return result, err
		}
		result.Outcomes = append(result.Outcomes, out)
	}

	return result, nil
}

// install runs the installer for every package of c that is missing and
// returns the packages it ran for. Installs are not interruptible: a pass
// that has started runs every install to completion even if ctx is
// cancelled, so a preset is never configured without its install attempt.
func (r *Reconciler) install(ctx context.Context, logger *slog.Logger, c capability.Capability) []string {
	ctx = context.WithoutCancel(ctx)
	var ran []string
	for _, pkg := range c.Packages {
		if r.installer.IsInstalled(pkg) {
			logger.Debug("package already installed", "package", pkg)
			continue
		}

		logger.Info("installing package", "package", pkg)
		if err := r.installer.Install(ctx, pkg); err != nil {
			logger.Warn("package install failed", "package", pkg, "error", err)
		}
		ran = append(ran, pkg)
	}
	return ran
}

// configure appends c's preset to the configuration if it is missing.
// Only a load failure is returned; a save failure is recorded on out.
func (r *Reconciler) configure(logger *slog.Logger, c capability.Capability, out *Outcome) error {
	doc, err := r.store.Load()
	if err != nil {
		err = errors.Mark(errors.Wrapf(err, "loading babel config for %s", c.Name), errors.ErrConfigParse)
		logger.Error("cannot read babel config", "capability", c.Name, "error", err)
		out.Err = err
		return err
	}

	if doc.HasPreset(c.Name) {
		logger.Debug("preset already configured", "preset", c.Name)
		out.AlreadyConfigured = true
		return nil
	}

	doc.AddPreset(c.Name)
	if err := r.store.Save(doc); err != nil {
		logger.Error("failed to write babel config", "preset", c.Name, "error", err)
		out.Err = err
		return nil
	}

	logger.Info("added preset to babel config", "preset", c.Name)
	out.Configured = true
	return nil
}

// Inspect runs the detectors, honoring requirements, without installing or
// configuring anything.
func (r *Reconciler) Inspect(tree *syntax.Tree) *Result {
	return Inspect(r.registry, tree)
}

// Inspect runs the detectors in registry against tree with the same gating
// as a reconciliation pass.
func Inspect(registry *capability.Registry, tree *syntax.Tree) *Result {
	result := &Result{Path: tree.Path}
	detected := make(map[string]bool, registry.Len())

	for _, c := range registry.All() {
		out := Outcome{Capability: c.Name}
		switch {
		case c.Requires != "" && !detected[c.Requires]:
			out.Gated = true
		case c.Detect(tree):
			detected[c.Name] = true
			out.Detected = true
		}
		result.Outcomes = append(result.Outcomes, out)
	}
	return result
}
