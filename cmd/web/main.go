// @title           memberhub API
// @version         1.0
// @description     Membership, subscription and payment tracking for small businesses.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "memberhub_backend/internal/app"

func main() {
	app.Run()
}
