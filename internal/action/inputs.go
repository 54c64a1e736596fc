package action

// Inputs is implemented by action-specific input sets. Concrete input sets
// live outside this package; the only obligation here is that they can
// validate themselves before the action runs.
type Inputs interface {
	Validate() error
}
