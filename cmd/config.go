package cmd

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	ActiveOrderLimit  int
	TaxRate           string
	ShippingFee       string
	BackorderSchedule string
}
