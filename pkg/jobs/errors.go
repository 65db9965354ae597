package jobs

import "errors"

var (
	// ErrNotFound is returned when no job with the requested id exists in
	// the queue.
	ErrNotFound = errors.New("job not found")

	// ErrInvalidJobID is returned for job ids that cannot be addressed,
	// such as ones containing quote characters. Controller job ids are
	// plain "JID_"/"RID_" tokens; anything else never matches a job.
	ErrInvalidJobID = errors.New("invalid job id")

	// ErrTimeout is returned when a job does not reach a terminal state
	// within the polling deadline. The job may still finish remotely.
	ErrTimeout = errors.New("timed out waiting for job completion")

	// ErrInvalidRebootType is returned for reboot types outside the
	// supported set.
	ErrInvalidRebootType = errors.New("unsupported reboot type")

	// ErrNoJobID is returned when the controller accepts a job creation
	// but the response carries no job reference.
	ErrNoJobID = errors.New("response carried no job id")
)
