package balance

type BalanceResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	LeaveTypeID  string `json:"leave_type_id"`
	Year         int    `json:"year"`
	Balance      string `json:"balance"`
	Used         string `json:"used"`
	CarryForward string `json:"carry_forward"`
	Remaining    string `json:"remaining"`
}

// Availability is the computed headroom for a new request. Pending days
// for the same leave type count against it even though they have not
// touched the ledger yet.
type Availability struct {
	Balance      string `json:"balance"`
	CarryForward string `json:"carry_forward"`
	Used         string `json:"used"`
	Pending      string `json:"pending"`
	Available    string `json:"available"`
}
