package models

type Supporter struct {
	ID         int64
	Name       string
	DonationID int64
}
