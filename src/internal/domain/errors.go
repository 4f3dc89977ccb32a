package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrAccountNotFound = errors.New("Account not found")
var ErrCustomerNotFound = errors.New("Customer not found")
var ErrProductNotFound = errors.New("Product not found")
var ErrUserNotFound = errors.New("User not found")
var ErrDuplicateEvent = errors.New("Event already recorded for this period")
var ErrSequenceExhausted = errors.New("Account number sequence exhausted for branch")
