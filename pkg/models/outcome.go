package models

// Outcome is the four-valued verdict of one hook invocation.
type Outcome string

const (
	// OutcomeAllow means the hook permitted the change (exit code 0).
	OutcomeAllow Outcome = "allow"
	// OutcomeBlock means the hook vetoed the change (exit code 2).
	OutcomeBlock Outcome = "block"
	// OutcomeFail means the hook itself malfunctioned: spawn error or
	// any exit code other than 0 or 2.
	OutcomeFail Outcome = "fail"
	// OutcomeTimeout means the hook did not exit within its deadline.
	// Kept distinct from OutcomeFail so operators can separate "the
	// check is broken" from "the check is too slow".
	OutcomeTimeout Outcome = "timeout"
)

// Valid returns true if the outcome is a known value.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeAllow, OutcomeBlock, OutcomeFail, OutcomeTimeout:
		return true
	default:
		return false
	}
}
