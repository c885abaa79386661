package main

import "github.com/CosimoLM/InteligenciaArtificialV3/internal/cli"

//	@title						Text Classification API
//	@version					1.0
//	@description				Users, texts and sentiment predictions with an offline naive Bayes model.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
func main() {
	cli.Execute()
}
