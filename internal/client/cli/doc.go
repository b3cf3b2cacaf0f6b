// Package cli provides the interactive SikaCare terminal client.
//
// It wires configuration, the local session store, the backend client and
// the app services, resolves the start screen, and then runs a prompt loop
// in which every screen offers its own commands:
//
//	login            login, register, forgot, google
//	register         submit, google, login
//	forgot-password  send, login
//	reset-password   continue, resend, back
//	onboarding       verify, code, skip, avatars, submit
//	intro            next, prev, done
//	home             profile, logout
//
// "help" lists the commands of the current screen and "exit" quits from any
// screen. A background watcher pings the backend and shows online/offline in
// the prompt. The loop is started via App.Run(ctx), which blocks until the
// user exits.
package cli
