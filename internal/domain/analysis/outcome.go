package analysis

// LegacyErrorPrefix prefixes failure messages in the string-only form.
const LegacyErrorPrefix = "Error analyzing resume: "

// Outcome holds exactly one of Result or Err.
type Outcome struct {
	Result *Result
	Err    *Error
}

func Success(r Result) Outcome { return Outcome{Result: &r} }

func Failure(err *Error) Outcome {
	if err == nil {
		err = NewError(KindInternal, "", nil)
	}
	return Outcome{Err: err}
}

func (o Outcome) OK() bool { return o.Err == nil && o.Result != nil }

// Legacy collapses the outcome into the untyped form: the Result on success
// or a message string on failure.
func (o Outcome) Legacy() any {
	if o.OK() {
		return *o.Result
	}
	msg := "unknown error"
	if o.Err != nil && o.Err.Err != nil {
		msg = o.Err.Err.Error()
	}
	return LegacyErrorPrefix + msg
}
