package handler

import (
	"net/http"

	"github.com/eaglebank/mts/internal/message"
)

type operation int

const (
	opCreate operation = iota
	opGet
	opList
	opUpdate
	opFindByEmail
)

type operationPolicy struct {
	name           string
	successStatus  int
	successKey     string
	rejectedStatus int
}

// policies fixes the status code and message key of every operation.
// A rejected (nil) result is a 404 for getById and list but a 400 everywhere
// else; a raised not-found is always a 404.
var policies = map[operation]operationPolicy{
	opCreate:      {name: "create", successStatus: http.StatusCreated, successKey: message.SuccessKey, rejectedStatus: http.StatusBadRequest},
	opGet:         {name: "get_by_id", successStatus: http.StatusOK, successKey: message.SuccessKey, rejectedStatus: http.StatusNotFound},
	opList:        {name: "list", successStatus: http.StatusOK, successKey: message.SuccessKey, rejectedStatus: http.StatusNotFound},
	opUpdate:      {name: "update", successStatus: http.StatusOK, successKey: message.UpdateKey, rejectedStatus: http.StatusBadRequest},
	opFindByEmail: {name: "find_by_email", successStatus: http.StatusOK, successKey: message.SuccessKey, rejectedStatus: http.StatusBadRequest},
}

type outcome int

const (
	outcomeOK outcome = iota
	outcomeRejected
	outcomeNotFound
	outcomeFailed
	outcomeInvalid
)

func (o outcome) String() string {
	switch o {
	case outcomeOK:
		return "ok"
	case outcomeRejected:
		return "rejected"
	case outcomeNotFound:
		return "not_found"
	case outcomeInvalid:
		return "invalid"
	default:
		return "failed"
	}
}
