package entity

import "time"

// FiscalSequence representa un rango de NCF autorizado por la DGII.
// Solo debe existir una secuencia activa por tipo a la vez; CurrentNumber es el
// próximo número a asignar y nunca retrocede. La secuencia se agota cuando
// CurrentNumber supera EndNumber y vence cuando pasa ValidUntil.
type FiscalSequence struct {
	ID            string
	SequenceType  string // B01, B02, B14, B15
	Prefix        string // prefijo impreso en el NCF (normalmente igual al tipo)
	CurrentNumber int64
	EndNumber     int64
	ValidUntil    time.Time
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
