package core

import (
	"strconv"

	"github.com/google/uuid"
)

// datasetSpace namespaces dataset addresses.
var datasetSpace = uuid.MustParse("5b0e7f7c-2f1a-4d8e-9a57-0d6c1f3e8a42")

// DatasetAddress derives the storage address of the dataset occupying slot
// index of the registry owned by owner. The address doubles as the dataset ID.
func DatasetAddress(owner string, index uint64) string {
	seed := "dataset:" + owner + ":" + strconv.FormatUint(index, 10)
	return uuid.NewSHA1(datasetSpace, []byte(seed)).String()
}
