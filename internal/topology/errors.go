package topology

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a queried VPC, or an entire queried
// region, yielded no records. Fatal to the single query that raised
// it; distinct from the dangling-reference warnings a build records.
type NotFoundError struct {
	Region string
	VpcID  string
}

func (e *NotFoundError) Error() string {
	if e.VpcID != "" {
		return fmt.Sprintf("vpc %s not found in region %s", e.VpcID, e.Region)
	}
	return fmt.Sprintf("no VPCs found in region %s", e.Region)
}

// IsNotFound reports whether err is a topology NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
