package ledger

import "fmt"

// Bucket names a virtual equity bucket used to balance income and expense
// postings against real accounts.
type Bucket string

const (
	BucketIncome  Bucket = "income"
	BucketExpense Bucket = "expense"
)

// AccountRef is a tagged reference to either a real account or a virtual
// income/expense bucket, so that the type distinguishes real postings from
// equity-bucket postings instead of a magic account id.
type AccountRef struct {
	ID     int64  `json:"account_id,omitempty"`
	Bucket Bucket `json:"bucket,omitempty"`
}

// RealAccount references an account row by id.
func RealAccount(id int64) AccountRef {
	return AccountRef{ID: id}
}

// VirtualBucket references the income or expense bucket.
func VirtualBucket(b Bucket) AccountRef {
	return AccountRef{Bucket: b}
}

// IsVirtual reports whether the reference points at a bucket rather than
// a real account.
func (r AccountRef) IsVirtual() bool {
	return r.Bucket != ""
}

// IsReal reports whether the reference points at a stored account.
func (r AccountRef) IsReal() bool {
	return !r.IsVirtual() && r.ID != 0
}

func (r AccountRef) String() string {
	if r.IsVirtual() {
		return "~" + string(r.Bucket)
	}
	return fmt.Sprintf("account:%d", r.ID)
}
