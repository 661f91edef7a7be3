package imglab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imglab/moderation/pkg/imglab"
)

func TestPrefixesFor(t *testing.T) {
	p := imglab.DefaultPrefixes()

	assert.Equal(t, "pending/", p.For(imglab.StatePending))
	assert.Equal(t, "approved/", p.For(imglab.StateApproved))
	assert.Equal(t, "rejected/", p.For(imglab.StateRejected))
}

func TestPrefixesValidate(t *testing.T) {
	tests := []struct {
		name     string
		prefixes imglab.Prefixes
		valid    bool
	}{
		{"defaults", imglab.DefaultPrefixes(), true},
		{"custom", imglab.Prefixes{Pending: "inbox/", Approved: "live/", Rejected: "trash/"}, true},
		{"missing slash", imglab.Prefixes{Pending: "pending", Approved: "approved/", Rejected: "rejected/"}, false},
		{"empty", imglab.Prefixes{Pending: "", Approved: "approved/", Rejected: "rejected/"}, false},
		{"duplicate", imglab.Prefixes{Pending: "x/", Approved: "x/", Rejected: "rejected/"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prefixes.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, imglab.ErrInvalidPrefix)
			}
		})
	}
}

func TestStates(t *testing.T) {
	states := imglab.States()
	assert.Equal(t, []imglab.SubmissionState{
		imglab.StatePending,
		imglab.StateApproved,
		imglab.StateRejected,
	}, states)
}

func TestDefaultAllowedTypes(t *testing.T) {
	types := imglab.DefaultAllowedTypes()

	assert.Equal(t, "jpg", types["image/jpeg"])
	assert.Equal(t, "png", types["image/png"])
	assert.Equal(t, "webp", types["image/webp"])
	assert.Len(t, types, 3)
}
