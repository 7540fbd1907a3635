package domain

const (
	VerifyPending  = "pending"
	VerifyVerified = "verified"
	VerifyRejected = "rejected"
)

// RecordKind discriminates the two record shapes a verification action
// can target: a student-submitted Placement or a Student's legacy
// original record.
type RecordKind string

const (
	RecordKindPlacement RecordKind = "placement"
	RecordKindOriginal  RecordKind = "original"
)

type VerifyAction string

const (
	VerifyActionApprove VerifyAction = "approve"
	VerifyActionReject  VerifyAction = "reject"
)
