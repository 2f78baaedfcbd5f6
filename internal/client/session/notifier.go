package session

// Notifier surfaces the outcome of a session operation to the user.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// NotifierFuncs adapts two functions to Notifier. Nil fields are skipped.
type NotifierFuncs struct {
	OnSuccess func(msg string)
	OnFailure func(msg string)
}

func (n NotifierFuncs) Success(msg string) {
	if n.OnSuccess != nil {
		n.OnSuccess(msg)
	}
}

func (n NotifierFuncs) Failure(msg string) {
	if n.OnFailure != nil {
		n.OnFailure(msg)
	}
}

// Notification texts.
const (
	MsgSignInSuccess  = "Welcome back!"
	MsgSignInFailure  = "Login failed"
	MsgSignUpSuccess  = "Account created!"
	MsgSignUpFailure  = "Registration failed"
	MsgSignOutSuccess = "Logged out"
	MsgSessionExpired = "Session expired, please sign in again"
	MsgBusy           = "Please wait for the current operation to finish"
)
