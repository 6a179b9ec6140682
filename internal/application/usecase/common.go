package usecase

import "github.com/shopspring/decimal"

// systemUserID atribuye al sistema los barridos disparados por lecturas.
const systemUserID int64 = 0

var hundred = decimal.NewFromInt(100)
