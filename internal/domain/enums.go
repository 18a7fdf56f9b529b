package domain

// EstateType classifies an estate.
type EstateType string

const (
	EstateTypeResidential EstateType = "residential"
	EstateTypeCommercial  EstateType = "commercial"
	EstateTypeMixed       EstateType = "mixed"
)

func (t EstateType) String() string { return string(t) }

func (t EstateType) IsValid() bool {
	switch t {
	case EstateTypeResidential, EstateTypeCommercial, EstateTypeMixed:
		return true
	}
	return false
}

// ChargeStatus is the payment state of a service charge.
type ChargeStatus string

const (
	ChargeStatusPending ChargeStatus = "pending"
	ChargeStatusPartial ChargeStatus = "partial"
	// ChargeStatusReview means a manual (receipt) payment awaits admin confirmation.
	ChargeStatusReview ChargeStatus = "review"
	ChargeStatusPaid   ChargeStatus = "paid"
)

func (s ChargeStatus) String() string { return string(s) }

func (s ChargeStatus) IsValid() bool {
	switch s {
	case ChargeStatusPending, ChargeStatusPartial, ChargeStatusReview, ChargeStatusPaid:
		return true
	}
	return false
}

// PaymentMethod records how a payment was made.
type PaymentMethod string

const (
	PaymentMethodDirect PaymentMethod = "direct"
	// PaymentMethodManual is a bank transfer evidenced by an uploaded receipt.
	PaymentMethodManual   PaymentMethod = "manual"
	PaymentMethodPaystack PaymentMethod = "paystack"
	PaymentMethodTest     PaymentMethod = "test"
)

func (m PaymentMethod) String() string { return string(m) }

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodDirect, PaymentMethodManual, PaymentMethodPaystack, PaymentMethodTest:
		return true
	}
	return false
}

// RequiresReceipt reports whether the method needs an uploaded receipt.
func (m PaymentMethod) RequiresReceipt() bool { return m == PaymentMethodManual }

// NotificationType groups notifications for display.
type NotificationType string

const (
	NotificationTypePayment NotificationType = "payment"
	NotificationTypeMessage NotificationType = "message"
	NotificationTypeEstate  NotificationType = "estate"
)

func (t NotificationType) String() string { return string(t) }

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypePayment, NotificationTypeMessage, NotificationTypeEstate:
		return true
	}
	return false
}

// Relationship is a user's standing towards one estate. Admin implies member.
type Relationship string

const (
	RelationshipOutsider         Relationship = "outsider"
	RelationshipPendingRequester Relationship = "pending_requester"
	RelationshipInvited          Relationship = "invited"
	RelationshipMember           Relationship = "member"
	RelationshipAdmin            Relationship = "admin"
)

func (r Relationship) String() string { return string(r) }
