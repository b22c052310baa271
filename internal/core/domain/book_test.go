package domain

import "testing"

func TestBook_Available(t *testing.T) {
	b := &Book{Status: StatusAvailable, BorrowerID: NoBorrower}
	if !b.Available() {
		t.Fatalf("AVAILABLE book must be available")
	}

	b.Status = StatusBorrowed
	b.BorrowerID = "user-1"
	if b.Available() {
		t.Fatalf("BORROWED book must not be available")
	}
}

func TestBook_BorrowedBy(t *testing.T) {
	b := &Book{Status: StatusBorrowed, BorrowerID: "user-1"}
	if !b.BorrowedBy("user-1") {
		t.Fatalf("expected user-1 to be the borrower")
	}
	if b.BorrowedBy("user-2") {
		t.Fatalf("user-2 is not the borrower")
	}

	b.Status = StatusAvailable
	b.BorrowerID = NoBorrower
	if b.BorrowedBy(NoBorrower) {
		t.Fatalf("the sentinel id must never count as a borrower")
	}
}

func TestValidCategory(t *testing.T) {
	if !ValidCategory(CategoryFiction) || !ValidCategory(CategoryNotDefined) {
		t.Fatalf("known categories must validate")
	}
	if ValidCategory(BookCategory("COOKERY")) {
		t.Fatalf("unknown category must not validate")
	}
}

func TestRole_String(t *testing.T) {
	cases := map[Role]string{
		RoleAdmin:     "ADMIN",
		RoleUser:      "USER",
		RoleDeveloper: "DEVELOPER",
		Role(9):       "UNKNOWN",
	}
	for role, want := range cases {
		if got := role.String(); got != want {
			t.Fatalf("Role(%d).String() = %q, want %q", int(role), got, want)
		}
	}
}
