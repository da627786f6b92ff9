package reconcile

// Outcome records what a pass did for one capability.
type Outcome struct {
	Capability string `json:"capability"`

	// Gated is set when the capability's requirement was not detected, so
	// its detector never ran.
	Gated bool `json:"gated,omitempty"`

	Detected bool `json:"detected"`

	// Installed lists the packages an install was run for. Installs are not
	// verified, so this says nothing about whether they succeeded.
	Installed []string `json:"installed,omitempty"`

	// Configured is set when the preset was appended and saved.
	Configured bool `json:"configured,omitempty"`

	// AlreadyConfigured is set when the preset was already listed.
	AlreadyConfigured bool `json:"already_configured,omitempty"`

	// Err holds a configuration load or write failure.
	Err error `json:"-"`
}

// Result is the record of one pass over one file.
type Result struct {
	Path     string    `json:"path"`
	Outcomes []Outcome `json:"outcomes"`
}

// Detected returns the names of the capabilities detected in the pass, in
// evaluation order.
func (r *Result) Detected() []string {
	if r == nil {
		return nil
	}
	var names []string
	for _, o := range r.Outcomes {
		if o.Detected {
			names = append(names, o.Capability)
		}
	}
	return names
}

// Changed reports whether the pass installed anything or wrote the
// configuration.
func (r *Result) Changed() bool {
	if r == nil {
		return false
	}
	for _, o := range r.Outcomes {
		if len(o.Installed) > 0 || o.Configured {
			return true
		}
	}
	return false
}

// Errors returns the per-capability failures recorded in the pass.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errs
}
