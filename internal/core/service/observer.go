package service

import "time"

// Observer receives timing and outcome data for submissions and fetches.
type Observer interface {
	ObserveSubmission(form, outcome string, elapsed time.Duration)
	ObserveFetch(collection, outcome string)
}

type nopObserver struct{}

func (nopObserver) ObserveSubmission(string, string, time.Duration) {}
func (nopObserver) ObserveFetch(string, string)                     {}
