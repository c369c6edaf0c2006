package domain

// LoginForm holds the sign-in fields
type LoginForm struct {
	Email    string `json:"email" validate:"notblank,emailaddr"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterForm holds the sign-up fields
type RegisterForm struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"notblank,emailaddr"`
	Password string `json:"password" validate:"required,min=6"`
	Confirm  string `json:"confirm" validate:"eqfield=Password"`
}

// DefaultCountry is used when the shipping form leaves the country empty
const DefaultCountry = "IN"

// ShippingForm is the first checkout step
type ShippingForm struct {
	FirstName string `json:"firstName" validate:"notblank"`
	LastName  string `json:"lastName" validate:"notblank"`
	Email     string `json:"email" validate:"notblank,emailaddr"`
	Phone     string `json:"phone"`
	Address   string `json:"address" validate:"notblank"`
	City      string `json:"city" validate:"notblank"`
	State     string `json:"state" validate:"notblank"`
	Zip       string `json:"zip" validate:"notblank"`
	Country   string `json:"country"`
}

// PaymentForm is the second checkout step. Card data never leaves the process.
type PaymentForm struct {
	CardName   string `json:"cardName" validate:"notblank"`
	CardNumber string `json:"cardNumber" validate:"cardnumber"`
	Expiry     string `json:"expiry" validate:"expiry"`
	CVV        string `json:"cvv" validate:"cvv"`
}
