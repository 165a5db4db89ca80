package config

type Config struct {
	// адрес HTTP-шлюза почты, пусто - письма только логируются
	MailAddr string
	MailFrom string
}
