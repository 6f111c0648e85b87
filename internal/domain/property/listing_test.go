package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/estate-listings/internal/httperr"
)

func validListing() ListingInput {
	return ListingInput{
		Name:        "Sunny flat",
		Description: "Close to the park",
		Price:       120000,
		For:         ForSale,
		Type:        TypeApartment,
		Area:        75,
		Rooms:       3,
		Bathrooms:   1,
		Location:    "Tbilisi",
		SellerPhone: "5551234567",
		Images:      []string{"https://cdn.example.com/1.webp"},
	}
}

func TestListingInput_Valid(t *testing.T) {
	assert.NoError(t, validListing().Validate())
}

func TestListingInput_ReportsEveryField(t *testing.T) {
	in := ListingInput{
		Name:   "   ",
		For:    "LEASE",
		Type:   "CASTLE",
		Rooms:  0,
		Images: nil,
	}

	err := in.Validate()
	ve, ok := httperr.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)

	fields := ve.FieldMap()
	for _, f := range []string{"name", "description", "price", "for", "type", "area", "rooms", "location", "sellerPhone", "images"} {
		assert.Contains(t, fields, f)
	}
	assert.NotContains(t, fields, "bathrooms")
}

func TestListingInput_ImageCount(t *testing.T) {
	in := validListing()
	in.Images = []string{
		"https://cdn.example.com/1.webp",
		"https://cdn.example.com/2.webp",
		"https://cdn.example.com/3.webp",
		"https://cdn.example.com/4.webp",
		"https://cdn.example.com/5.webp",
	}
	assert.NoError(t, in.Validate())

	in.Images = append(in.Images, "https://cdn.example.com/6.webp")
	ve, ok := httperr.AsValidation(in.Validate())
	require.True(t, ok)
	assert.Equal(t, []string{"Maximum 5 images are allowed"}, ve.FieldMap()["images"])
}

func TestListingInput_ImageMustBeURL(t *testing.T) {
	in := validListing()
	in.Images = []string{"not a url"}

	ve, ok := httperr.AsValidation(in.Validate())
	require.True(t, ok)
	assert.Equal(t, []string{"Must be a valid URL"}, ve.FieldMap()["images"])
}

func TestListingInput_NegativeBathrooms(t *testing.T) {
	in := validListing()
	in.Bathrooms = -1

	ve, ok := httperr.AsValidation(in.Validate())
	require.True(t, ok)
	assert.Equal(t, []string{"Must be 0 or higher"}, ve.FieldMap()["bathrooms"])
}
