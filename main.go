/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/voxnotes/scribe-api/cmd"

// @title           Scribe API
// @version         1.0.0
// @description     Speech transcription API with speaker diarization and title suggestions
// @contact.name    API Support
// @contact.url     https://github.com/voxnotes/scribe-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 JWT issued by POST /login/
func main() {
	cmd.Execute()
}
