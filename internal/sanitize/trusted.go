package sanitize

// TrustedString wraps text that is allowed to be forwarded verbatim to
// the notification service. Downstream code only accepts this type, never
// a raw string, so every text field is forced through the boundary here.
type TrustedString struct {
	s string
}

// Mark wraps caller-supplied text as trusted.
//
// No character policy is applied: the forbidden set depends on the markup
// rules of the receiving display service and is deliberately not guessed
// here. Callers that want a policy run CheckText first and decide what to
// do with a rejection.
func Mark(s string) TrustedString {
	return TrustedString{s: s}
}

// Inner returns the wrapped text.
func (t TrustedString) Inner() string {
	return t.s
}

// Rule reports whether a rune is forbidden.
type Rule func(r rune) bool

// Violation is one forbidden rune and its byte offset in the input.
type Violation struct {
	Pos  int
	Rune rune
}

// Result is the outcome of CheckText: either the text was accepted, or it
// was rejected with the exact positions that violated the rule. Reporting
// positions rather than a bare pass/fail lets the caller choose between
// rejecting outright and stripping or escaping the offenders.
type Result struct {
	Text       string
	Violations []Violation
}

// Accepted reports whether the text passed the rule.
func (r Result) Accepted() bool {
	return len(r.Violations) == 0
}

// CheckText scans s with rule and collects every violating rune. A nil
// rule accepts everything.
func CheckText(s string, rule Rule) Result {
	res := Result{Text: s}
	if rule == nil {
		return res
	}
	for i, r := range s {
		if rule(r) {
			res.Violations = append(res.Violations, Violation{Pos: i, Rune: r})
		}
	}
	return res
}

// RejectControl forbids C0 and C1 control characters except tab and
// newline. It is offered as an obvious default policy; Mark does not
// apply it.
func RejectControl(r rune) bool {
	if r == '\t' || r == '\n' {
		return false
	}
	return (r >= 0 && r < 0x20) || r == 0x7f || (r >= 0x80 && r <= 0x9f)
}
