package models

import "errors"

var (
	// ErrInvalidInput indicates a caller-supplied value violated a precondition
	// (non-positive price, stop not below entry, non-positive portfolio value).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientHistory indicates fewer price bars than a computation
	// requires (ATR period, breakout window, regime moving average).
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrDataUnavailable indicates an external fetch failed or returned empty.
	ErrDataUnavailable = errors.New("data unavailable")
)
