package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/common"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
	"github.com/spf13/viper"
)

// LoadProfile builds the driver's tax profile from Viper configuration.
// Missing values fall back to a Quebec profile for the previous filing year.
func LoadProfile() (*model.TaxProfile, error) {
	profile := &model.TaxProfile{
		Name:               viper.GetString("profile.name"),
		Province:           model.Province(strings.ToUpper(viper.GetString("profile.province"))),
		SIN:                maskSIN(viper.GetString("profile.sin")),
		Year:               viper.GetInt("profile.year"),
		BusinessUsePercent: viper.GetFloat64("profile.business_use_percent"),
		GSTRegistered:      viper.GetBool("profile.gst_registered"),
		QuickMethod:        viper.GetBool("profile.quick_method"),
		VehicleCost:        viper.GetFloat64("profile.vehicle_cost"),
		VehicleCCAClass:    viper.GetString("profile.vehicle_cca_class"),
		OpeningUCC:         viper.GetFloat64("profile.opening_ucc"),
	}

	if profile.Province == "" {
		profile.Province = model.ProvinceQC
	}
	if profile.Year == 0 {
		profile.Year = time.Now().Year() - 1
	}

	if profile.BusinessUsePercent < 0 || profile.BusinessUsePercent > 100 {
		return nil, fmt.Errorf("%w: profile.business_use_percent must be between 0 and 100, got %.2f",
			common.ErrInvalidConfig, profile.BusinessUsePercent)
	}
	if profile.VehicleCost < 0 {
		return nil, fmt.Errorf("%w: profile.vehicle_cost cannot be negative", common.ErrInvalidConfig)
	}

	return profile, nil
}

// maskSIN keeps only the last 3 digits of a social insurance number.
// The full SIN never touches the database or the exports.
func maskSIN(sin string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, sin)
	if len(digits) < 3 {
		return ""
	}
	return "***-***-" + digits[len(digits)-3:]
}
