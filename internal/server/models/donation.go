package models

import "time"

type Donation struct {
	ID        int64
	Coins     uint64
	DonatedAt time.Time
	IncomeEUR float64
	CoOp      string
}
