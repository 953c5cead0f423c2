package domain

import (
	"testing"

	"gorm.io/datatypes"
)

func TestValidateCampaign(t *testing.T) {
	details := datatypes.JSON([]byte(`{"vaccine_name":"MMR","doses":1}`))

	tests := []struct {
		name     string
		campaign Campaign
		wantErr  bool
	}{
		{"vaccination with details", Campaign{Type: CampaignVaccination, VaccineDetails: details}, false},
		{"vaccination without details", Campaign{Type: CampaignVaccination}, true},
		{"checkup without details", Campaign{Type: CampaignCheckup}, false},
		{"unknown type", Campaign{Type: "Screening"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCampaign(&tt.campaign)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCampaign err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
