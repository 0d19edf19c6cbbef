// Package session is the storefront's order session state machine.
//
// A Machine owns exactly one State. Every exported operation checks that the
// current Screen allows it, validates its inputs, and then either commits a
// new State or returns a rejection leaving the State untouched. Transition
// logic lives in plain functions over State values (transitions.go); the
// Machine adds locking, order id issuance, logging and the best-effort
// persistence of the remembered identity through a Store.
//
// Persistence never gates a transition. The in-memory State is committed
// first; a failing Store call is reported as a Warning in the Result and
// logged, and the State is not rolled back.
//
// Screens and the operations that leave them:
//
//	Anonymous    AttemptLogin, AttemptAutoLogin -> Browsing
//	             BeginRegistration               -> Registering
//	Registering  Register                        -> Browsing
//	             CancelRegistration              -> Anonymous
//	Browsing     BeginCheckout                   -> CheckingOut
//	CheckingOut  ConfirmOrder                    -> RatingOrder
//	             CancelCheckout                  -> Browsing
//	RatingOrder  SubmitFeedback, SkipFeedback    -> Browsing
//	any but Anonymous: Logout                    -> Anonymous
package session
