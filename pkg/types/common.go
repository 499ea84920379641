package types

const (
	LANGUAGE_EN_KEY = "en"
	LANGUAGE_CN_KEY = "zh-CN"
)

const (
	STORE_DRIVER_POSTGRES = "postgres"
	STORE_DRIVER_SQLITE   = "sqlite"
)
