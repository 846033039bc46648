/*
 * This file is part of privacy-logic.
 *
 * privacy-logic is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * privacy-logic is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with privacy-logic.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"github.com/joho/godotenv"
	"github.com/voice4victims/privacy-logic/cmd"
)

func main() {
	// Local development reads its settings from .env, absence is fine.
	godotenv.Load()
	cmd.Execute()
}
