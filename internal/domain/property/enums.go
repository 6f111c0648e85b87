package property

// ===============================
// Listing enums
// ===============================

type For string

const (
	ForRent For = "RENT"
	ForSale For = "SALE"
)

type Type string

const (
	TypeApartment  Type = "APARTMENT"
	TypeHouse      Type = "HOUSE"
	TypeLand       Type = "LAND"
	TypeOffice     Type = "OFFICE"
	TypeCommercial Type = "COMMERCIAL"
	TypeGarage     Type = "GARAGE"
	TypeParking    Type = "PARKING"
	TypeStorage    Type = "STORAGE"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusExpired  Status = "EXPIRED"
)

var types = map[Type]struct{}{
	TypeApartment:  {},
	TypeHouse:      {},
	TypeLand:       {},
	TypeOffice:     {},
	TypeCommercial: {},
	TypeGarage:     {},
	TypeParking:    {},
	TypeStorage:    {},
}

func (f For) Valid() bool {
	return f == ForRent || f == ForSale
}

func (t Type) Valid() bool {
	_, ok := types[t]
	return ok
}

// InitialStatus is the status every new listing starts in.
func InitialStatus() Status {
	return StatusActive
}
