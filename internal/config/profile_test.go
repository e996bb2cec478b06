package config

import (
	"testing"
	"time"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/common"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()

	viper.Set("profile.name", "Sami")
	viper.Set("profile.province", "qc")
	viper.Set("profile.sin", "123-456-789")
	viper.Set("profile.year", 2024)
	viper.Set("profile.gst_registered", true)
	viper.Set("profile.vehicle_cost", 30000.0)
	viper.Set("profile.vehicle_cca_class", "10")

	profile, err := LoadProfile()
	require.NoError(t, err)

	assert.Equal(t, "Sami", profile.Name)
	assert.Equal(t, model.ProvinceQC, profile.Province)
	assert.Equal(t, "***-***-789", profile.SIN)
	assert.Equal(t, 2024, profile.Year)
	assert.True(t, profile.GSTRegistered)
	assert.Equal(t, "10", profile.VehicleCCAClass)
}

func TestLoadProfile_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()

	profile, err := LoadProfile()
	require.NoError(t, err)

	assert.Equal(t, model.ProvinceQC, profile.Province)
	assert.Equal(t, time.Now().Year()-1, profile.Year)
	assert.Empty(t, profile.SIN)
}

func TestLoadProfile_InvalidBusinessUse(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()

	viper.Set("profile.business_use_percent", 140.0)

	_, err := LoadProfile()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestMaskSIN(t *testing.T) {
	tests := []struct {
		name string
		sin  string
		want string
	}{
		{name: "dashed", sin: "123-456-789", want: "***-***-789"},
		{name: "digits only", sin: "123456789", want: "***-***-789"},
		{name: "empty", sin: "", want: ""},
		{name: "too short", sin: "12", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskSIN(tt.sin))
		})
	}
}
