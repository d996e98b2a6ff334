package service

import (
	"testing"

	"eldercare-assist-be/pkg/companion"
	"eldercare-assist-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrisisEventDerivation(t *testing.T) {
	patientId := uuid.New()

	crisisAlert := &companion.Alert{
		Id:        uuid.New(),
		PatientId: patientId,
		Category:  companion.CategoryMentalHealth,
		Severity:  companion.SeverityCritical,
		Metadata:  map[string]interface{}{"phrases": []string{"end my life"}},
	}
	evt, ok := crisisEvent(crisisAlert)
	require.True(t, ok)
	assert.Equal(t, events.TypeCrisisDetected, evt.Type)
	assert.Equal(t, patientId.String(), evt.Data["patient_id"])
	assert.Equal(t, []string{"end my life"}, evt.Data["phrases"])

	sosAlert := &companion.Alert{
		Id:        uuid.New(),
		PatientId: patientId,
		Category:  companion.CategorySOS,
		Severity:  companion.SeverityHigh,
	}
	_, ok = crisisEvent(sosAlert)
	assert.False(t, ok)
}

func TestMetadataPhrasesHandlesDecodedJSON(t *testing.T) {
	// Metadata that round-tripped through JSON carries []interface{}.
	decoded := map[string]interface{}{
		"phrases": []interface{}{"hurt myself", 42},
	}
	assert.Equal(t, []string{"hurt myself"}, metadataPhrases(decoded))
	assert.Nil(t, metadataPhrases(map[string]interface{}{}))
}
