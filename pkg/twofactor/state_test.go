package twofactor_test

import (
	"testing"

	"github.com/mfakit/mfakit/pkg/twofactor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    twofactor.Action
		wantErr bool
	}{
		{input: "", want: twofactor.ActionNone},
		{input: "enable", want: twofactor.ActionEnable},
		{input: "disable", want: twofactor.ActionDisable},
		{input: "Enable", wantErr: true},
		{input: "delete", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run("input "+tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := twofactor.ParseAction(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, twofactor.ErrUnknownAction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextState(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		current twofactor.State
		action  twofactor.Action
		want    twofactor.State
		wantErr bool
	}{
		{name: "Enable from pending", current: twofactor.StatePendingVerification, action: twofactor.ActionEnable, want: twofactor.StateEnabled},
		{name: "Enable from enabled (re-provisioned)", current: twofactor.StateEnabled, action: twofactor.ActionEnable, want: twofactor.StateEnabled},
		{name: "Enable from disabled", current: twofactor.StateDisabled, action: twofactor.ActionEnable, wantErr: true},
		{name: "Disable from enabled", current: twofactor.StateEnabled, action: twofactor.ActionDisable, want: twofactor.StateDisabled},
		{name: "Disable from pending", current: twofactor.StatePendingVerification, action: twofactor.ActionDisable, wantErr: true},
		{name: "Disable from disabled", current: twofactor.StateDisabled, action: twofactor.ActionDisable, wantErr: true},
		{name: "Plain challenge keeps state", current: twofactor.StateEnabled, action: twofactor.ActionNone, want: twofactor.StateEnabled},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := twofactor.NextState(tt.current, tt.action)
			if tt.wantErr {
				assert.ErrorIs(t, err, twofactor.ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCredentialState(t *testing.T) {
	t.Parallel()
	var nilCred *twofactor.Credential
	assert.Equal(t, twofactor.StateNotConfigured, nilCred.State())

	assert.Equal(t, twofactor.StatePendingVerification,
		(&twofactor.Credential{TOTPSecret: "SECRET"}).State())

	assert.Equal(t, twofactor.StateEnabled,
		(&twofactor.Credential{TOTPSecret: "SECRET", TOTPEnabled: true}).State())

	assert.Equal(t, twofactor.StateDisabled,
		(&twofactor.Credential{}).State())
}
